package store

import (
	"context"
	"errors"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for the
// service, memory for tests) implement this.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// The duplicate-email race is closed here, not by callers: two
	// concurrent creates with the same email must yield exactly one
	// success and one ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail is used during sign-in. Email matching is exact.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// UpdateMFASecret stores a pending TOTP secret and bumps updated_at.
	UpdateMFASecret(ctx context.Context, userID, secret string) error

	// EnableMFA marks the second factor active (sets mfa_enabled_at).
	EnableMFA(ctx context.Context, userID string) error
}
