// Package api is the REST client for the school registration backend.
// Every call distinguishes three outcomes: a decoded value, a backend
// rejection (*APIError, carrying the body's error/message text), and a
// transport failure. Delete endpoints additionally report "soft" errors:
// an error payload inside a 200 body, which callers treat as applied.
package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get-style calls when the backend has no
// matching record.
var ErrNotFound = errors.New("not found")

// APIError is a backend rejection: a non-2xx status, with whatever
// error/message text the body carried.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// DeleteResult reports the outcome of a delete. SoftError is the backend's
// error text when it rejected the delete inside a 2xx body; callers still
// refresh their collection either way.
type DeleteResult struct {
	SoftError string
}

// Client talks to the registration backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the error shape backends send both on non-2xx statuses and,
// for deletes, inside 200 bodies. Some endpoints use "error", others
// "message".
type envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do performs one request and returns the raw body of a 2xx response.
// A non-2xx response becomes *APIError with the body's error text.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.log.Debug("request done",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return nil, &APIError{Status: resp.StatusCode, Message: env.text()}
	}
	return data, nil
}

// getJSON fetches path and decodes the 2xx body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decode(data, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

// sendJSON posts/puts body to path and decodes the response into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decode(data, out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

// deleteJSON issues a DELETE and inspects the 2xx body for a soft error.
// Transport and status failures still surface as errors; soft errors do
// not, since the original UI proceeds as if the delete applied.
func (c *Client) deleteJSON(ctx context.Context, path string) (DeleteResult, error) {
	data, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	var env envelope
	_ = json.Unmarshal(data, &env)
	return DeleteResult{SoftError: env.text()}, nil
}

func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
