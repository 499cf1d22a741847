// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package storefront provides the authenticated storefront API client.
// It owns the session token lifecycle: every request carries the tenant
// headers, expired access tokens are refreshed through a single-flight
// coordinator, and the original request is replayed exactly once.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wso2/storefront-platform/storefront-service/clients/requests"
	"github.com/wso2/storefront-platform/storefront-service/session"
	"github.com/wso2/storefront-platform/storefront-service/utils"
)

// Tenant routing headers attached to every backend request.
const (
	HeaderCompanySlug = "X-Company-Slug"
	HeaderCompanyID   = "X-Company-Id"
)

// Config contains configuration for the storefront client
type Config struct {
	// BaseURL is the backend origin; endpoints are resolved under /api
	BaseURL string

	// DefaultCompanySlug routes requests before a tenant is resolved
	DefaultCompanySlug string

	// Session is the token and tenant store the client owns
	Session *session.Store

	// Timeout bounds a single request attempt. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient requests.HttpClient
}

// Client is the authenticated API client. It is safe for concurrent use.
type Client struct {
	apiBase     string
	defaultSlug string
	session     *session.Store
	httpClient  requests.HttpClient

	mu          sync.RWMutex
	companySlug string

	refreshGroup singleflight.Group
}

// NewClient creates a storefront API client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiBase:     strings.TrimRight(cfg.BaseURL, "/") + "/api",
		defaultSlug: cfg.DefaultCompanySlug,
		session:     cfg.Session,
		httpClient:  httpClient,
	}, nil
}

// Session exposes the store so HTTP boundaries can write session cookies.
func (c *Client) Session() *session.Store {
	return c.session
}

// SetCompanySlug pins the tenant slug for subsequent requests.
func (c *Client) SetCompanySlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.companySlug = slug
}

// CompanySlug returns the resolved tenant slug, falling back to the
// configured default so public endpoints always route correctly.
func (c *Client) CompanySlug() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.companySlug != "" {
		return c.companySlug
	}
	return c.defaultSlug
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	anonymous bool
}

// WithoutAuth omits the Authorization header. Endpoints like login must
// not receive a stale token.
func WithoutAuth() CallOption {
	return func(o *callOptions) {
		o.anonymous = true
	}
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, endpoint, func(req *requests.HttpRequest) {
		req.SetQueryParams(query)
	}, out, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, endpoint, func(req *requests.HttpRequest) {
		if body != nil {
			req.SetJson(body)
		}
	}, out, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, endpoint, func(req *requests.HttpRequest) {
		if body != nil {
			req.SetJson(body)
		}
	}, out, opts...)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPatch, endpoint, func(req *requests.HttpRequest) {
		if body != nil {
			req.SetJson(body)
		}
	}, out, opts...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

// Upload sends files as a multipart form, with extra fields flattened
// into plain form fields. File contents are buffered up front: the
// request may be replayed after a token refresh, and the original
// readers are consumed by the first attempt.
func (c *Client) Upload(ctx context.Context, endpoint string, files []requests.UploadFile, fields map[string]string, out any, opts ...CallOption) error {
	contents := make([][]byte, len(files))
	for i, f := range files {
		data, err := io.ReadAll(f.Content)
		if err != nil {
			return fmt.Errorf("failed to read upload file %q: %w", f.FileName, err)
		}
		contents[i] = data
	}

	return c.do(ctx, http.MethodPost, endpoint, func(req *requests.HttpRequest) {
		parts := make([]requests.UploadFile, len(files))
		for i, f := range files {
			parts[i] = requests.UploadFile{FileName: f.FileName, Content: bytes.NewReader(contents[i])}
		}
		req.SetMultipart(parts, fields)
	}, out, opts...)
}

// do runs the shared execution path: send, then on 401 with a refresh
// token available run one coordinated refresh and replay the request
// exactly once. A 401 on the replay propagates without another refresh.
func (c *Client) do(ctx context.Context, method, endpoint string, prep func(*requests.HttpRequest), out any, opts ...CallOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	authenticated := !options.anonymous

	if authenticated {
		c.ensureFreshToken(ctx)
	}

	result := c.send(ctx, method, endpoint, prep, authenticated)
	if err := result.Err(); err != nil {
		return err
	}

	status := result.StatusCode()
	if isSuccess(status) {
		return c.scan(result, out)
	}

	if status == http.StatusUnauthorized && authenticated && c.session.RefreshToken() != "" {
		if _, err := c.refreshAccessToken(ctx); err != nil {
			return err
		}

		retry := c.send(ctx, method, endpoint, prep, authenticated)
		if err := retry.Err(); err != nil {
			return err
		}
		if isSuccess(retry.StatusCode()) {
			return c.scan(retry, out)
		}
		return c.buildError(retry)
	}

	return c.buildError(result)
}

// send performs one network attempt with fresh headers.
func (c *Client) send(ctx context.Context, method, endpoint string, prep func(*requests.HttpRequest), authenticated bool) *requests.Result {
	req := &requests.HttpRequest{
		Name:   "storefront." + method + " " + endpoint,
		URL:    c.apiBase + endpoint,
		Method: method,
	}
	if prep != nil {
		prep(req)
	}

	req.SetHeader(HeaderCompanySlug, c.CompanySlug())
	if companyID := c.session.CompanyID(); companyID != "" {
		req.SetHeader(HeaderCompanyID, companyID)
	}
	if authenticated {
		if token := c.session.AccessToken(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}

	return requests.SendRequest(ctx, c.httpClient, req)
}

// scan decodes a successful response: JSON bodies into out, anything
// else as raw text when out is a *string.
func (c *Client) scan(result *requests.Result, out any) error {
	if out == nil {
		return nil
	}
	body := result.RawBody()
	if len(body) == 0 {
		return nil
	}
	if strings.Contains(result.GetHeader("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
		return nil
	}
	if text, ok := out.(*string); ok {
		*text = string(body)
		return nil
	}
	return fmt.Errorf("unexpected content type %q for %s", result.GetHeader("Content-Type"), result.RequestURL())
}

// buildError converts a non-2xx response into a structured APIError.
// A 401 here is authentication-invalid: either no refresh token existed
// or the replay failed again.
func (c *Client) buildError(result *requests.Result) error {
	apiErr := buildAPIError(result.StatusCode(), result.StatusText(), result.RawBody(), result.RequestURL())
	if result.StatusCode() == http.StatusUnauthorized {
		apiErr.cause = errors.Join(apiErr.cause, utils.ErrSessionExpired)
	}
	return apiErr
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
