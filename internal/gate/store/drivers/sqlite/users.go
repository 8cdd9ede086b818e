package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
)

type usersRepo struct {
	db *sql.DB
}

type userRow struct {
	id           string
	email        string
	username     string
	passwordHash string
	mfaSecret    sql.NullString
	mfaEnabledAt sql.NullTime
	createdAt    time.Time
	updatedAt    time.Time
}

const userColumns = `id, email, username, password_hash, mfa_secret, mfa_enabled_at, created_at, updated_at`

func scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(
		&u.id,
		&u.email,
		&u.username,
		&u.passwordHash,
		&u.mfaSecret,
		&u.mfaEnabledAt,
		&u.createdAt,
		&u.updatedAt,
	)
	return u, err
}

// CreateUser relies on the UNIQUE index on email for the check-and-insert:
// a race between two registrations resolves inside SQLite, one insert wins
// and the other surfaces as store.ErrAlreadyExists.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(u), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(u), nil
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET mfa_secret = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		secret, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET mfa_enabled_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND mfa_secret IS NOT NULL`,
		userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
