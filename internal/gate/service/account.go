package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
	"github.com/gatehouseio/gatehouse/internal/gate/store"
	"github.com/gatehouseio/gatehouse/pkg/cryptox"
	"github.com/gatehouseio/gatehouse/pkg/idx"
	"github.com/gatehouseio/gatehouse/pkg/jwtx"
	"github.com/gatehouseio/gatehouse/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// Sign-in failure causes stay distinct here so they can be logged and
// tested; the HTTP layer collapses all of them into one generic message to
// avoid account enumeration.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUnknownAccount     = errors.New("no account for email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid one-time code")
)

type AccountService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// Register creates a new user with a salted Argon2id password hash. The
// duplicate-email check is delegated to the store's atomic insert.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// SignIn verifies the credentials (and the one-time code when the account
// has a second factor) and issues a signed access token carrying the
// subject's UserId claim.
func (s *AccountService) SignIn(ctx context.Context, email, password, otpCode string) (string, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownAccount
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			log.Info("sign-in rejected: wrong password", "user_id", u.ID)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	if u.MFAEnabled() {
		if u.MFASecret == nil || !totp.Validate(otpCode, *u.MFASecret) {
			log.Info("sign-in rejected: bad one-time code", "user_id", u.ID)
			return "", ErrInvalidOTP
		}
	}

	claims := jwtx.NewAccessClaims(u.ID, s.TokenTTL, s.Issuer, s.Audience, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	log.Info("user signed in", "user_id", u.ID)
	return token, nil
}

// GetUserByID fetches a user by id.
func (s *AccountService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
