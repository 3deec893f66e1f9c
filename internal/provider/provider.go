// Package provider composes calls to the identity provider management API:
// tenant base URL, bearer authorization, JSON encoding and error mapping.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/config"
	"users_manager_backend/platform/upstream"
)

// Caller is the subset of upstream.Client used here.
type Caller interface {
	Do(ctx context.Context, req upstream.Request) (*upstream.Response, error)
}

// Client builds and sends management API requests.
type Client struct {
	caller  Caller
	tenant  string
	domain  string
	baseURL string
	token   string
}

// New creates a provider client from configuration.
func New(caller Caller, cfg config.ProviderConfig) *Client {
	return &Client{
		caller:  caller,
		tenant:  cfg.GetTenantDomain(),
		domain:  cfg.GetProviderDomain(),
		baseURL: cfg.GetProviderBaseURL(),
		token:   cfg.GetManagementAPIToken(),
	}
}

// Base returns the root URL for a tenant. An empty tenant uses the configured one.
// A configured base URL override wins over the computed host.
func (c *Client) Base(tenant string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if strings.TrimSpace(tenant) == "" {
		tenant = c.tenant
	}
	return fmt.Sprintf("https://%s.%s", tenant, c.domain)
}

// APIPath joins escaped path segments under /api/v2.
func APIPath(segments ...string) string {
	escaped := make([]string, 0, len(segments)+2)
	escaped = append(escaped, "api", "v2")
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return "/" + strings.Join(escaped, "/")
}

// Call is a single outbound call.
type Call struct {
	Method string
	Tenant string
	Path   string
	Query  url.Values
	// Payload is JSON encoded when non-nil.
	Payload any
}

// Do performs the call and returns the raw provider body.
// Failures are returned as *apperr.Error.
func (c *Client) Do(ctx context.Context, call Call) (*upstream.Response, error) {
	target := c.Base(call.Tenant) + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Authorization", "Bearer "+c.token)

	var body []byte
	if call.Payload != nil {
		encoded, err := json.Marshal(call.Payload)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to encode provider payload", err)
		}
		body = encoded
		headers.Set("Content-Type", "application/json")
	}

	resp, err := c.caller.Do(ctx, upstream.Request{
		Method:  call.Method,
		URL:     target,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, upstream.ToAppError(err)
	}
	return resp, nil
}

// Body performs the call and returns only the response body.
func (c *Client) Body(ctx context.Context, call Call) (string, error) {
	resp, err := c.Do(ctx, call)
	if err != nil {
		return "", err
	}
	return resp.Body, nil
}
