package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a Gatehouse server over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, username, password string) (*StatusResponse, error) {
	body := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}

	var out StatusResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn exchanges credentials for an access token. The otp argument is
// only consulted for accounts with MFA enabled and may be empty
// otherwise.
func (c *Client) SignIn(ctx context.Context, email, password, otp string) (*SignInResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	if otp != "" {
		body["otp"] = otp
	}

	var out SignInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signin", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Claims lists the claims the server extracted from the presented
// access token.
func (c *Client) Claims(ctx context.Context, token string) ([]Claim, error) {
	var out []Claim
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/claims", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile fetches the authenticated user's own record.
func (c *Client) Profile(ctx context.Context, token string) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollMFA starts TOTP enrollment for the authenticated user.
func (c *Client) EnrollMFA(ctx context.Context, token string) (*EnrollMFAResponse, error) {
	var out EnrollMFAResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/mfa/enroll", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateMFA confirms enrollment with a code from the authenticator.
func (c *Client) ActivateMFA(ctx context.Context, token, code string) (*StatusResponse, error) {
	body := map[string]string{"otp": code}

	var out StatusResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/mfa/activate", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs one request/response cycle. Non-2xx responses are
// decoded into an *APIError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}

		var envelope StatusResponse
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
