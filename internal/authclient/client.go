// Package authclient talks to the remote authentication endpoint: one URL,
// POST, JSON body with an "action" field. The endpoint owns credentials and
// token issuance; this client only carries requests and normalizes answers.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Skotchmaster/skinstore/internal/logging"
	"github.com/Skotchmaster/skinstore/internal/models"
)

// ErrNetwork is the uniform message surfaced whenever the endpoint could not
// be reached or did not answer with parseable JSON.
const ErrNetwork = "network or server error"

// Result is the single shape every auth call resolves to. Success implies
// User is set; register and login additionally set SessionToken. On failure
// Error carries the server's reason, or ErrNetwork when there was no usable
// answer. These calls never return a Go error: callers branch on Success
// and nothing else.
type Result struct {
	Success      bool         `json:"success"`
	User         *models.User `json:"user,omitempty"`
	SessionToken string       `json:"sessionToken,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// Client issues single-shot requests against the auth endpoint. No retries,
// no implicit cancellation between calls; pass a context to bound a call.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func New(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and logs it in. The endpoint rejects
// passwords shorter than 6 characters; callers should validate presence and
// confirmation locally but need not duplicate that check.
func (c *Client) Register(ctx context.Context, username, email, password string) Result {
	return c.post(ctx, map[string]string{
		"action":   "register",
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login exchanges credentials for a session. On bad credentials the
// server's own error message comes back verbatim in Result.Error.
func (c *Client) Login(ctx context.Context, username, password string) Result {
	return c.post(ctx, map[string]string{
		"action":   "login",
		"username": username,
		"password": password,
	})
}

// Verify checks a stored token and returns the server's current view of the
// user. It rotates nothing and stores nothing, so it is safe to call any
// number of times.
func (c *Client) Verify(ctx context.Context, token string) Result {
	return c.post(ctx, map[string]string{
		"action":       "verify",
		"sessionToken": token,
	})
}

func (c *Client) post(ctx context.Context, body map[string]string) Result {
	l := logging.FromContext(ctx).With("component", "authclient", "action", body["action"])

	payload, err := json.Marshal(body)
	if err != nil {
		l.Error("auth_request_failed", "reason", "marshal", "error", err)
		return Result{Error: ErrNetwork}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		l.Error("auth_request_failed", "reason", "build_request", "error", err)
		return Result{Error: ErrNetwork}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		l.Warn("auth_request_failed", "reason", "transport", "error", err)
		return Result{Error: ErrNetwork}
	}
	defer resp.Body.Close()

	// Failure responses also arrive as JSON bodies, some without a
	// "success" field at all; the zero value covers those. Anything that
	// does not decode collapses into the uniform network error.
	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		l.Warn("auth_request_failed", "reason", "decode", "status", resp.StatusCode, "error", err)
		return Result{Error: ErrNetwork}
	}

	if !res.Success && res.Error == "" {
		res.Error = ErrNetwork
	}
	return res
}
