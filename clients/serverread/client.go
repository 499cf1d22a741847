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

// Package serverread is the simplified API client for server-rendered
// page data. It has no refresh logic, reads credentials from inbound
// request cookies only, and can degrade public lookups to empty results
// so pages render an empty state instead of failing.
package serverread

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wso2/storefront-platform/storefront-service/clients/requests"
	"github.com/wso2/storefront-platform/storefront-service/clients/storefront"
	"github.com/wso2/storefront-platform/storefront-service/middleware/logger"
	"github.com/wso2/storefront-platform/storefront-service/session"
	"github.com/wso2/storefront-platform/storefront-service/utils"
)

// Config contains configuration for the server read client
type Config struct {
	BaseURL            string
	DefaultCompanySlug string
	Timeout            time.Duration
	RetryWaitMin       time.Duration
	RetryWaitMax       time.Duration
	RetryMax           int
}

// Client issues unauthenticated-tolerant reads for page rendering.
// It is safe for concurrent use; ForRequest derives per-request copies.
type Client struct {
	apiBase     string
	defaultSlug string
	httpClient  requests.HttpClient

	accessToken string
	companyID   string
}

// New creates the shared server read client. Idempotent GETs are retried
// on transient statuses through go-retryablehttp.
func New(cfg *Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = &retryLogger{}
	rc.CheckRetry = checkRetry

	return &Client{
		apiBase:     strings.TrimRight(cfg.BaseURL, "/") + "/api",
		defaultSlug: cfg.DefaultCompanySlug,
		httpClient:  rc.StandardClient(),
	}
}

// checkRetry retries connection errors and, for GETs only, transient
// statuses. POSTs are not idempotent here and never retry on status.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.Request != nil && resp.Request.Method != http.MethodGet {
		return false, nil
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// ForRequest returns a copy of the client scoped to one inbound request,
// with the access token and tenant id read from its cookies. The durable
// client-side store is never consulted on this path.
func (c *Client) ForRequest(r *http.Request) *Client {
	scoped := *c
	scoped.accessToken = session.ReadCookie(r, session.KeyAccessToken)
	scoped.companyID = session.ReadCookie(r, session.KeyCompanyID)
	return &scoped
}

// CallOption adjusts a single read.
type CallOption func(*callOptions)

type callOptions struct {
	public bool
}

// Public marks the endpoint as publicly listable content: a 401 or 404
// degrades to an empty result instead of an error. The call site decides
// this explicitly rather than the client guessing from the URL shape.
func Public() CallOption {
	return func(o *callOptions) {
		o.public = true
	}
}

// GetList fetches a collection endpoint into out (a pointer to a slice).
// Public endpoints degrade to an empty collection on 401/404.
func (c *Client) GetList(ctx context.Context, endpoint string, query url.Values, out any, opts ...CallOption) error {
	result, options := c.get(ctx, endpoint, query, opts)
	if err := result.Err(); err != nil {
		return err
	}

	status := result.StatusCode()
	switch {
	case status >= 200 && status < 300:
		if len(result.RawBody()) == 0 {
			return json.Unmarshal([]byte("[]"), out)
		}
		return json.Unmarshal(result.RawBody(), out)
	case options.public && (status == http.StatusUnauthorized || status == http.StatusNotFound):
		logger.GetLogger(ctx).Warn("serverread: public collection unavailable, rendering empty state",
			slog.String("endpoint", endpoint),
			slog.Int("status", status))
		return json.Unmarshal([]byte("[]"), out)
	default:
		return c.httpError(result)
	}
}

// GetSingle fetches a single resource into out. Public endpoints report
// found=false on 401/404 instead of an error.
func (c *Client) GetSingle(ctx context.Context, endpoint string, query url.Values, out any, opts ...CallOption) (bool, error) {
	result, options := c.get(ctx, endpoint, query, opts)
	if err := result.Err(); err != nil {
		return false, err
	}

	status := result.StatusCode()
	switch {
	case status >= 200 && status < 300:
		// A successful response with no body has no resource to report.
		if len(result.RawBody()) == 0 {
			return false, nil
		}
		if err := json.Unmarshal(result.RawBody(), out); err != nil {
			return false, fmt.Errorf("failed to decode response body: %w", err)
		}
		return true, nil
	case options.public && (status == http.StatusUnauthorized || status == http.StatusNotFound):
		logger.GetLogger(ctx).Warn("serverread: public resource unavailable, rendering empty state",
			slog.String("endpoint", endpoint),
			slog.Int("status", status))
		return false, nil
	default:
		return false, c.httpError(result)
	}
}

// Post issues a simple JSON POST, the only write verb on this path.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	req := c.newRequest("serverread.Post", http.MethodPost, endpoint)
	if body != nil {
		req.SetJson(body)
	}
	return requests.SendRequest(ctx, c.httpClient, req).ScanResponse(out, http.StatusOK)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, opts []CallOption) (*requests.Result, callOptions) {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	req := c.newRequest("serverread.Get", http.MethodGet, endpoint)
	req.SetQueryParams(query)
	return requests.SendRequest(ctx, c.httpClient, req), options
}

func (c *Client) newRequest(name, method, endpoint string) *requests.HttpRequest {
	req := &requests.HttpRequest{
		Name:   name,
		URL:    c.apiBase + endpoint,
		Method: method,
	}
	req.SetHeader(storefront.HeaderCompanySlug, c.defaultSlug)
	if c.companyID != "" {
		req.SetHeader(storefront.HeaderCompanyID, c.companyID)
	}
	if c.accessToken != "" {
		req.SetHeader("Authorization", "Bearer "+c.accessToken)
	}
	return req
}

// maxErrorBodyRunes bounds how much of an upstream error body is carried
// into error messages and logs.
const maxErrorBodyRunes = 2048

func (c *Client) httpError(result *requests.Result) error {
	return &requests.HttpError{
		StatusCode: result.StatusCode(),
		Body:       utils.TruncateString(string(result.RawBody()), maxErrorBodyRunes),
	}
}
