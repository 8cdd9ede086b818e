package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatehouseio/gatehouse/pkg/httpx"
	"github.com/gatehouseio/gatehouse/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("an-hmac-secret-of-32-bytes......")

func protectedEcho(t *testing.T) (http.Handler, *jwtx.HS256Signer) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "iss", "aud")
	require.NoError(t, err)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.UserIDFromContext(r.Context())))
	})

	return httpx.Chain(h, httpx.AuthnMiddleware(verifier)), signer
}

func TestAuthnMiddlewarePassesValidToken(t *testing.T) {
	h, signer := protectedEcho(t)

	token, err := signer.Sign(jwtx.NewAccessClaims("user-7", time.Hour, "iss", "aud", time.Now().UTC()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-7", rec.Body.String())
}

func TestAuthnMiddlewareRejectsBadRequests(t *testing.T) {
	h, signer := protectedEcho(t)

	expired, err := signer.Sign(jwtx.NewAccessClaims(
		"user-7", time.Hour, "iss", "aud", time.Now().UTC().Add(-2*time.Hour)))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		})
	}
}
