package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatehouseio/gatehouse/internal/gate/store"
	"github.com/gatehouseio/gatehouse/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

var (
	ErrMFAAlreadyEnabled = errors.New("second factor already enabled")
	ErrMFANotEnrolled    = errors.New("no pending second factor enrollment")
	ErrMFABadCode        = errors.New("one-time code did not match")
)

type MFAService struct {
	Store  store.Store
	Issuer string
}

// Enrollment holds what the user needs to configure their authenticator.
type Enrollment struct {
	Secret string
	URL    string // otpauth:// provisioning URL
}

// Enroll generates a TOTP secret for the user and stores it pending
// activation. Sign-in behaviour only changes once Activate confirms the
// user's authenticator actually produces matching codes.
func (s *MFAService) Enroll(ctx context.Context, userID string) (Enrollment, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("lookup user: %w", err)
	}

	if u.MFAEnabled() {
		return Enrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return Enrollment{}, fmt.Errorf("store totp secret: %w", err)
	}

	slogx.FromContext(ctx).Info("mfa enrollment started", "user_id", userID)
	return Enrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// Activate verifies a code against the pending secret and turns the second
// factor on.
func (s *MFAService) Activate(ctx context.Context, userID, code string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	if u.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}
	if u.MFASecret == nil {
		return ErrMFANotEnrolled
	}

	if !totp.Validate(code, *u.MFASecret) {
		return ErrMFABadCode
	}

	if err := s.Store.Users().EnableMFA(ctx, userID); err != nil {
		return fmt.Errorf("enable mfa: %w", err)
	}

	slogx.FromContext(ctx).Info("mfa enabled", "user_id", userID)
	return nil
}
