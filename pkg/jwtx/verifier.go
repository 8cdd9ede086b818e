package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	// ErrInvalidSecret is a configuration fault, not a token fault. A
	// process holding an unusable secret must refuse to start.
	ErrInvalidSecret = fmt.Errorf("jwtx: secret shorter than %d bytes", MinSecretLen)
)

// Verifier validates a compact JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Verifier validates tokens signed with HMAC-SHA256 using a shared
// secret. Signature comparison is constant-time (hmac.Equal inside
// golang-jwt). The check order on failure is signature, expiry, issuer,
// audience; the first failing check wins.
type HS256Verifier struct {
	key      []byte
	issuer   string
	audience string
}

// NewVerifierHS256 creates a verifier bound to the expected issuer and
// audience. The same MinSecretLen floor as the signer applies.
func NewVerifierHS256(secret []byte, issuer, audience string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrInvalidSecret
	}
	return &HS256Verifier{key: secret, issuer: issuer, audience: audience}, nil
}

// Verify validates the token against the wall clock.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	return v.VerifyAt(tokenStr, time.Now().UTC())
}

// VerifyAt validates the token as of the provided instant. Exposing the
// clock keeps expiry behaviour deterministic under test.
func (v *HS256Verifier) VerifyAt(tokenStr string, now time.Time) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	// Issuer and audience are checked here rather than through parser
	// options so callers can tell the two failures apart.
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.audience); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
