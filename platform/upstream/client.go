// Package upstream provides the HTTP client used for identity provider calls.
// It returns the raw response on 2xx and a typed error otherwise; it never retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/logger"
)

const maxErrorBodyBytes = 4096

// Request describes a single outbound call.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Response is a successful (2xx) provider response.
type Response struct {
	Status  int
	Headers http.Header
	Body    string
}

// HTTPError is returned when the provider answers with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
	Body    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// ConnectionError is returned when the provider cannot be reached.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return "upstream connection failed: " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// ClientError is returned for any other failure of the HTTP client.
type ClientError struct {
	Err error
}

func (e *ClientError) Error() string { return "upstream client failed: " + e.Err.Error() }
func (e *ClientError) Unwrap() error { return e.Err }

// Doer is the subset of *http.Client used by Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs provider calls.
type Client struct {
	httpClient Doer
	log        *logger.Logger
}

// New creates a client with its own *http.Client using the given timeout.
func New(timeout time.Duration, log *logger.Logger) *Client {
	return NewWithDoer(&http.Client{Timeout: timeout}, log)
}

// NewWithDoer creates a client around an existing Doer.
func NewWithDoer(doer Doer, log *logger.Logger) *Client {
	return &Client{httpClient: doer, log: log}
}

// Do performs the request. On a 2xx status the body is returned as text.
func (c *Client) Do(ctx context.Context, in Request) (*Response, error) {
	var body io.Reader
	if len(in.Body) > 0 {
		body = bytes.NewReader(in.Body)
	}

	req, err := http.NewRequestWithContext(ctx, in.Method, in.URL, body)
	if err != nil {
		return nil, &ClientError{Err: fmt.Errorf("create request: %w", err)}
	}
	for key, values := range in.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := classifyTransportError(err)
		c.logCall(req, 0, start, wrapped)
		return nil, wrapped
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		httpErr := &HTTPError{
			Status:  resp.StatusCode,
			Message: providerMessage(resp.StatusCode, raw),
			Body:    string(raw),
		}
		c.logCall(req, resp.StatusCode, start, httpErr)
		return nil, httpErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := &ClientError{Err: fmt.Errorf("read body: %w", err)}
		c.logCall(req, resp.StatusCode, start, wrapped)
		return nil, wrapped
	}

	c.logCall(req, resp.StatusCode, start, nil)
	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header.Clone(),
		Body:    string(raw),
	}, nil
}

func (c *Client) logCall(req *http.Request, status int, start time.Time, err error) {
	if c.log == nil {
		return
	}
	latency := float64(time.Since(start).Microseconds()) / 1000
	c.log.WithContext(req.Context()).UpstreamCall(req.Method, req.URL.Host, req.URL.Path, status, latency, err)
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return &ClientError{Err: err}
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &ConnectionError{Err: err}
	}
	return &ClientError{Err: err}
}

// providerMessage extracts a human readable message from an error body.
// Management API errors look like {"statusCode":404,"error":"Not Found","message":"..."}.
func providerMessage(status int, raw []byte) string {
	var body struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.ErrorDescription != "":
			return body.ErrorDescription
		case body.Error != "":
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return http.StatusText(status)
}

// ToAppError maps client errors to application errors.
// Errors that are already *apperr.Error, or unknown, pass through unchanged.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return &apperr.Error{
			Kind:    apperr.KindUpstream,
			Status:  httpErr.Status,
			Message: httpErr.Message,
			Err:     err,
			Details: map[string]any{"upstream_status": httpErr.Status},
		}
	}

	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return apperr.Wrap(apperr.KindUnavailable, "identity provider unreachable", err)
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return apperr.Wrap(apperr.KindInternal, "identity provider request failed", err)
	}

	return err
}
