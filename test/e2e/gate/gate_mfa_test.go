package gate_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// TestMFAEnrollActivateSignIn covers the full second-factor lifecycle:
// enroll, activate with a generated code, then sign in again where the
// code becomes mandatory.
func TestMFAEnrollActivateSignIn(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)
	token := signIn(t, client)

	// Enroll: the server hands back the shared secret and provisioning URL.
	enrollment, err := client.EnrollMFA(t.Context(), token)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://")

	// A wrong code must not activate anything.
	_, err = client.ActivateMFA(t.Context(), token, "000000")
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	// Activate with a real code from the enrolled secret.
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	resp, err := client.ActivateMFA(t.Context(), token, code)
	require.NoError(t, err)
	require.Equal(t, gatesdk.StatusSuccess, resp.Status)

	// Password alone no longer signs in.
	_, err = client.SignIn(t.Context(), testEmail, testPassword, "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Unable to sign in", apiErr.Message)

	// Password plus a fresh code does.
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	signInResp, err := client.SignIn(t.Context(), testEmail, testPassword, code)
	require.NoError(t, err)
	require.NotEmpty(t, signInResp.Token)
}

func TestMFAEnrollTwiceBeforeActivation(t *testing.T) {
	baseURL := setupGateServer(t)
	client := gatesdk.NewClient(baseURL)

	registerAccount(t, client)
	token := signIn(t, client)

	// Re-enrolling before activation just rotates the pending secret.
	first, err := client.EnrollMFA(t.Context(), token)
	require.NoError(t, err)
	second, err := client.EnrollMFA(t.Context(), token)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	// Only the latest pending secret activates.
	code, err := totp.GenerateCode(second.Secret, time.Now())
	require.NoError(t, err)
	_, err = client.ActivateMFA(t.Context(), token, code)
	require.NoError(t, err)

	// Enrollment is closed once the second factor is on.
	_, err = client.EnrollMFA(t.Context(), token)
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
