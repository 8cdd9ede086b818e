package gate_test

import (
	"net/http/httptest"
	"testing"

	gatehttp "github.com/gatehouseio/gatehouse/internal/gate/http"
	"github.com/gatehouseio/gatehouse/internal/gate/service"
	"github.com/gatehouseio/gatehouse/internal/gate/store/drivers/sqlite"
	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/gatehouseio/gatehouse/pkg/jwtx"
	"github.com/gatehouseio/gatehouse/pkg/slogx"
	"github.com/stretchr/testify/require"
)

/*
 * Common constants and helper functions for gatehouse end-to-end tests.
 * The full application stack (SQLite store, services, router) runs
 * in-process behind an httptest server.
 */

const (
	testSecret   = "e2e-0123456789abcdef0123456789ab"
	testIssuer   = "gatehouse"
	testAudience = "gatehouse-api"

	testEmail    = "kaitlyn@example.com"
	testUsername = "kaitlyn"
	testPassword = "Sup3rSecret!pass"
)

// setupGateServer spins up the whole service on an embedded in-memory
// database and returns its base URL. The server is torn down with the
// test.
func setupGateServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), testIssuer, testAudience)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{
		Service: "gatehouse-e2e",
		Level:   "error",
		Format:  "text",
	})

	router := gatehttp.NewRouter(verifier, "e2e", st, logger)
	router.AccountService = &service.AccountService{
		Store:    st,
		Signer:   signer,
		Issuer:   testIssuer,
		Audience: testAudience,
		TokenTTL: jwtx.DefaultAccessTokenTTL,
	}
	router.MFAService = &service.MFAService{
		Store:  st,
		Issuer: testIssuer,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL
}

// registerAccount registers the default test account and asserts success.
func registerAccount(t *testing.T, client *gatesdk.Client) {
	t.Helper()

	resp, err := client.Register(t.Context(), testEmail, testUsername, testPassword)
	require.NoError(t, err)
	require.Equal(t, gatesdk.StatusSuccess, resp.Status)
}

// signIn signs the default test account in and returns its access token.
func signIn(t *testing.T, client *gatesdk.Client) string {
	t.Helper()

	resp, err := client.SignIn(t.Context(), testEmail, testPassword, "")
	require.NoError(t, err)
	require.Equal(t, gatesdk.StatusSuccess, resp.Status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
