package sqlite_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
	"github.com/gatehouseio/gatehouse/internal/gate/store"
	"github.com/gatehouseio/gatehouse/internal/gate/store/drivers/sqlite"
	"github.com/gatehouseio/gatehouse/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     "someone",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2E$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
	}
}

func TestCreateAndFetchUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := testUser("a@x.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byEmail, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, u.Username, byEmail.Username)
	require.Equal(t, u.PasswordHash, byEmail.PasswordHash)
	require.Nil(t, byEmail.MFASecret)
	require.False(t, byEmail.MFAEnabled())
	require.False(t, byEmail.CreatedAt.IsZero())

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, testUser("dup@x.com")))

	err := st.Users().CreateUser(ctx, testUser("dup@x.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateUserEmailIsCaseSensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, testUser("a@x.com")))
	require.NoError(t, st.Users().CreateUser(ctx, testUser("A@x.com")))

	_, err := st.Users().GetUserByEmail(ctx, "A@X.COM")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestConcurrentRegistrationsSameEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = st.Users().CreateUser(ctx, testUser("race@x.com"))
		}()
	}
	wg.Wait()

	var wins, dups int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, store.ErrAlreadyExists)
			dups++
		}
	}
	require.Equal(t, 1, wins, "exactly one concurrent create may win")
	require.Equal(t, workers-1, dups)
}

func TestGetUserNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Users().GetUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMFALifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := testUser("mfa@x.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	// Enabling before a secret is stored must fail.
	require.ErrorIs(t, st.Users().EnableMFA(ctx, u.ID), store.ErrNotFound)

	require.NoError(t, st.Users().UpdateMFASecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MFASecret)
	require.Equal(t, "JBSWY3DPEHPK3PXP", *got.MFASecret)
	require.False(t, got.MFAEnabled(), "secret stored but not yet activated")

	require.NoError(t, st.Users().EnableMFA(ctx, u.ID))

	got, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.MFAEnabled())
}

func TestMFAUpdatesUnknownUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, st.Users().UpdateMFASecret(ctx, "missing", "SECRET"), store.ErrNotFound)
	require.ErrorIs(t, st.Users().EnableMFA(ctx, "missing"), store.ErrNotFound)
}
