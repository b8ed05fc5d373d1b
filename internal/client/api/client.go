// Package api is the HTTP gateway to the Currículo Xpress REST service.
// It centralizes request construction (base URL, JSON bodies, bearer
// credential) and cross-cutting response handling: a fixed timeout, a
// connectivity/server error split, and the global 401 hook that tears the
// session down before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/curriculoxpress/cxpress/internal/client/models"
	"github.com/curriculoxpress/cxpress/internal/logging"
)

// DefaultTimeout bounds every request. A request either resolves, errors,
// or times out; there is no user-triggered cancellation beyond ctx.
const DefaultTimeout = 10 * time.Second

// Session is the slice of the session store the gateway needs: the
// current token for outgoing requests and teardown on auth failure.
type Session interface {
	Token() string
	Logout(ctx context.Context) error
}

// Doer is the transport surface the resource services are built on.
// body and out are JSON-marshalled/unmarshalled; either may be nil.
type Doer interface {
	Do(ctx context.Context, method, path string, body any, out any) error
}

// HTTPClient implements Doer against a base URL plus the auth endpoints
// that fall outside the per-kind resource pattern.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session Session
	log     logging.Logger
}

// New builds the gateway. timeout <= 0 falls back to DefaultTimeout.
func New(baseURL string, sess Session, timeout time.Duration, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		log:     log,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{session: sess, base: http.DefaultTransport},
		},
	}
}

// errorBody is the shape servers use for rejection messages.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do issues one JSON request. Network failures and timeouts surface as
// ErrUnavailable (no response body exists to inspect); 401 triggers
// session teardown exactly once before returning; other 4xx/5xx come back
// as *Error with the extracted message; 2xx bodies unmarshal into out.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "no response from server", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		// Global teardown: the session must be gone before any caller's
		// error handler runs, regardless of which call hit the 401.
		if err := c.session.Logout(ctx); err != nil {
			c.log.Error(ctx, "session teardown after 401 failed", "error", err)
		}
		return &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func extractMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

// Login authenticates and returns the bearer token. The credential is not
// adopted here; the session store owns that.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := models.LoginUser{Email: email, Password: password}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	payload := models.RegisterUser{Name: name, Email: email, Password: password}
	if err := c.Do(ctx, http.MethodPost, "/auth/register", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
