// Package gatesdk is a small Go client for the Gatehouse authentication
// service. The response types double as the canonical wire shapes the
// server writes, so handlers and consumers cannot drift apart.
package gatesdk

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusResponse is the envelope for operations that only report an
// outcome (register, MFA activation).
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Errors carries field-level validation failures, when any.
	Errors map[string]string `json:"errors,omitempty"`
}

// SignInResponse carries the issued access token on success.
type SignInResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// Claim is one name/value assertion extracted from a validated token.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ProfileResponse is the authenticated subject's own user record.
type ProfileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// EnrollMFAResponse returns what the user needs to configure an
// authenticator app.
type EnrollMFAResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Secret  string `json:"secret"`
	URL     string `json:"url"`
}

// HealthChecks reports per-dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
