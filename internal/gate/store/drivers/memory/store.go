// Package memory provides an in-memory Store for tests and local
// experiments. It honours the same contracts as the sqlite driver,
// including the atomic duplicate-email check.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
	"github.com/gatehouseio/gatehouse/internal/gate/store"
)

type Store struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> id
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) Users() store.Users { return (*usersRepo)(s) }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type usersRepo Store

// CreateUser performs the check-and-insert under a single lock so
// concurrent registrations with the same email cannot both succeed.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return store.ErrAlreadyExists
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.MFASecret = &secret
	u.UpdatedAt = time.Now().UTC()
	r.byID[userID] = u
	return nil
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || u.MFASecret == nil {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	u.MFAEnabledAt = &now
	u.UpdatedAt = now
	r.byID[userID] = u
	return nil
}
