// Package api is the single point of egress to the HealthMate backend.
//
// Client fixes the base URL, request timeout, and JSON content type; a
// wrapping RoundTripper attaches the bearer token read from the credential
// store on every outgoing request. Responses are classified in one place:
// connectivity failures become ErrUnavailable, a 401 tears the persisted
// session down and requests navigation to the login screen, and envelope
// failures surface the backend message verbatim as *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/healthmate/cli/internal/logging"
)

// TokenSource yields the currently persisted access token, or an empty
// string when no session is stored. It is consulted on every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CredentialStore is the slice of the persistence layer the client needs:
// reading the token per request and wiping both slots on a 401.
type CredentialStore interface {
	TokenSource
	Clear(ctx context.Context) error
}

// envelope is the fixed response contract: every backend call returns
// {success, message?, data?}.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the backend REST API.
type Client struct {
	baseURL        string
	http           *http.Client
	creds          CredentialStore
	onUnauthorized func()
	log            logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithUnauthorizedHandler registers the navigation callback invoked after a
// 401 has cleared the persisted credentials. The composition root wires it
// to force the UI back to the login screen.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying *http.Client. The bearer transport
// is layered on top of its Transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a Client for the given base URL. The timeout applies to
// every request; there are no retries.
func NewClient(baseURL string, timeout time.Duration, creds CredentialStore, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	c.http.Timeout = timeout
	c.http.Transport = &bearerTransport{base: c.http.Transport, creds: creds}
	return c
}

// bearerTransport attaches the stored token as a bearer credential and
// stamps a request id for log correlation. The token is re-read from the
// store on every request, so a forced logout is visible immediately.
type bearerTransport struct {
	base  http.RoundTripper
	creds TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("X-Request-Id", uuid.NewString())

	token, err := t.creds.Token(req.Context())
	if err == nil && token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one JSON round trip. A nil out discards the envelope data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(ctx, req, out)
}

// upload performs the single multipart call in the API: report upload.
// Content type is multipart for this request only.
func (c *Client) upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(ctx, req, out)
}

// send executes the request and classifies the outcome. Callers receive
// either nil with out populated, or exactly one of: ErrUnavailable (wrapped),
// ErrUnauthorized (wrapped, after session teardown), or *APIError.
func (c *Client) send(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Raw transport diagnostics stay in the log; the caller gets a
		// user-safe sentinel.
		c.log.Debug(ctx, "transport failure", "method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug(ctx, "read response failure", "method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrUnavailable)
	}

	var env envelope
	if len(raw) > 0 {
		// An unparseable body on an error status still needs classifying,
		// so the decode error is only fatal on success statuses.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.forceLogout(ctx)
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// forceLogout wipes the persisted session and asks the UI to navigate to
// the login screen. Runs before the 401 error is returned, so callers can
// assume logged-out state on their next read.
func (c *Client) forceLogout(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear credentials after 401", "err", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
