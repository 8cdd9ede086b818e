package gate_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterSignInClaims walks the primary flow: register an account,
// sign in with its credentials, and read the claims back out of the
// issued token via the protected claims endpoint.
func TestRegisterSignInClaims(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)
	token := signIn(t, client)

	// The token is a compact JWS: three dot-separated segments.
	require.Equal(t, 2, strings.Count(token, "."))

	claims, err := client.Claims(t.Context(), token)
	require.NoError(t, err)
	require.NotEmpty(t, claims)

	require.Equal(t, "UserId", claims[0].Type)
	require.NotEmpty(t, claims[0].Value)

	byType := map[string]string{}
	for _, c := range claims {
		byType[c.Type] = c.Value
	}
	require.Equal(t, testIssuer, byType["iss"])
	require.Equal(t, testAudience, byType["aud"])

	// The profile endpoint resolves the same subject.
	profile, err := client.Profile(t.Context(), token)
	require.NoError(t, err)
	require.Equal(t, claims[0].Value, profile.ID)
	require.Equal(t, testEmail, profile.Email)
	require.Equal(t, testUsername, profile.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)

	_, err := client.Register(t.Context(), testEmail, "someone-else", testPassword)
	require.Error(t, err)

	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Email already exists", apiErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), "not-an-email", "x", "short")
	require.Error(t, err)

	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Errors, "email")
	require.Contains(t, apiErr.Errors, "username")
	require.Contains(t, apiErr.Errors, "password")
}

// TestSignInFailuresAreUniform checks that unknown accounts and wrong
// passwords are indistinguishable from the outside.
func TestSignInFailuresAreUniform(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)

	for _, tc := range []struct {
		name            string
		email, password string
	}{
		{"unknown email", "nobody@example.com", testPassword},
		{"wrong password", testEmail, "not-the-password"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.SignIn(t.Context(), tc.email, tc.password, "")
			require.Error(t, err)

			var apiErr *gatesdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			require.Equal(t, "Unable to sign in", apiErr.Message)
		})
	}
}

// TestProtectedRoutesRejectBadTokens covers the bearer gate itself:
// missing, malformed, and differently-signed tokens all bounce with 401
// before any handler runs.
func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)
	token := signIn(t, client)

	// Tamper with the signature segment.
	tampered := token[:len(token)-2] + "xx"

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not a jwt", "garbage"},
		{"tampered signature", tampered},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Claims(t.Context(), tc.token)
			require.Error(t, err)

			var apiErr *gatesdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

			_, err = client.Profile(t.Context(), tc.token)
			require.Error(t, err)
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		})
	}
}
