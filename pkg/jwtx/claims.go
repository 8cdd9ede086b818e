package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
const DefaultAccessTokenTTL = 3 * time.Hour

// ClaimUserID is the JSON name of the custom user identity claim.
const ClaimUserID = "UserId"

// Claims are the access-token claims used across the service. Changes must
// stay additive to keep previously issued tokens decodable.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the authenticated subject's user id. It duplicates "sub"
	// under a stable application-owned name so downstream consumers don't
	// have to care about registered-claim semantics.
	UserID string `json:"UserId,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a user access token.
func NewAccessClaims(userID string, ttl time.Duration, issuer, audience string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID: userID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks the expected audience is present.
func (c *Claims) ValidateAudience(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if !slices.Contains(c.Audience, expected) {
		return ErrAudience
	}

	return nil
}

// ValidateExpiryAt ensures the token isn't expired (exp) and isn't used
// before it becomes valid (nbf), evaluated at the provided instant.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateExpiry is ValidateExpiryAt against the wall clock.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC())
}
