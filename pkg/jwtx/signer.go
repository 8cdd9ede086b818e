package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the minimum HMAC-SHA256 key length we accept, in bytes.
// Anything shorter makes the signature brute-forceable offline.
const MinSecretLen = 16

// Signer is our interface for anything that can sign access tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// HS256Signer signs tokens using HMAC-SHA256 with a shared secret.
type HS256Signer struct {
	key []byte
	alg string
}

// NewSignerHS256 creates an HS256 signer from a shared secret. The secret
// must be at least MinSecretLen bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	s := &HS256Signer{
		key: secret,
		alg: jwt.SigningMethodHS256.Alg(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign turns claims into a signed compact JWT string
// (header.payload.signature, base64url without padding).
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate sanity-checks the key material.
func (s *HS256Signer) Validate() error {
	if len(s.key) < MinSecretLen {
		return ErrInvalidSecret
	}
	return nil
}
