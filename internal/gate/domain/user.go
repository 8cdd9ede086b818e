package domain

import "time"

type User struct {
	ID           string
	Email        string // unique, compared exactly as stored
	Username     string
	PasswordHash string     // argon2id PHC encoded
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	MFAEnabledAt *time.Time // when the second factor was activated (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MFAEnabled reports whether the user has an active second factor.
func (u User) MFAEnabled() bool {
	return u.MFAEnabledAt != nil
}
