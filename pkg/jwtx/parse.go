package jwtx

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ParseClaims decodes the payload segment of a compact token WITHOUT
// verifying its signature. The returned claims are untrusted: anyone can
// mint a token that parses cleanly here. Use it for diagnostics on tokens
// that already passed Verify, never to gate a request.
func ParseClaims(tokenStr string) (Claims, error) {
	if strings.Count(tokenStr, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenStr, &Claims{})
	if err != nil {
		return Claims{}, ErrMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	return *claims, nil
}
