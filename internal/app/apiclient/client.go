// internal/app/apiclient/client.go

// Package apiclient talks to the Apollo REST API.
//
// Every request carries the bearer token from the Client's TokenSource. A
// 401 or 403 answer fires OnUnauthorized before the error is returned, which
// is where a front end drops its stored token and sends the user back to
// the login screen.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single round trip when the caller supplies no
// http.Client.
const DefaultTimeout = 30 * time.Second

// ErrUnauthorized matches any *Error with status 401 or 403.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// Error is a non-2xx answer. Message is the server's "error" text, or the
// status text when the body carried none.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s %v", e.Status, e.Message, e.Fields)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && isUnauthorized(e.Status)
}

func isUnauthorized(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// TokenSource supplies the bearer token for each request. An empty token
// sends the request anonymously.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is safe for concurrent use once configured.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Log        *zap.Logger

	// OnUnauthorized, when set, is called with the status of every 401/403
	// answer.
	OnUnauthorized func(status int)
}

// New creates a Client for baseURL (e.g. http://localhost:8080).
func New(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Tokens:     tokens,
		Log:        logger,
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// Do sends in (when non-nil) as JSON and decodes the response into out
// (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		if tok := c.Tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); json.Unmarshal(data, &eb) == nil {
			if eb.Error != "" {
				apiErr.Message = eb.Error
			}
			apiErr.Fields = eb.Fields
		}
		c.Log.Debug("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message))
		if isUnauthorized(resp.StatusCode) && c.OnUnauthorized != nil {
			c.OnUnauthorized(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}
