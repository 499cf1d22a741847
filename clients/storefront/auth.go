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

package storefront

import (
	"context"
	"log/slog"

	"github.com/wso2/storefront-platform/storefront-service/middleware/logger"
	"github.com/wso2/storefront-platform/storefront-service/models"
)

// Login authenticates against the backend and persists the returned
// tokens and tenant in all session layers.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.CompanySlug == "" {
		req.CompanySlug = c.CompanySlug()
	}

	var resp models.LoginResponse
	if err := c.Post(ctx, "/auth/login/", req, &resp, WithoutAuth()); err != nil {
		return nil, err
	}

	c.session.SetAccessToken(resp.Access)
	c.session.SetRefreshToken(resp.Refresh)
	if resp.Company != nil {
		c.session.SetCompanyID(resp.Company.ID)
		c.SetCompanySlug(resp.Company.Slug)
	}

	logger.GetLogger(ctx).Info("storefront: user logged in",
		slog.String("username", resp.User.Username),
		slog.String("company_slug", req.CompanySlug))
	return &resp, nil
}

// Register creates a user (and company) on the backend. When the backend
// returns tokens the new session is persisted immediately.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := c.Post(ctx, "/auth/register/", req, &resp, WithoutAuth()); err != nil {
		return nil, err
	}

	if resp.Tokens != nil {
		c.session.SetAccessToken(resp.Tokens.Access)
		c.session.SetRefreshToken(resp.Tokens.Refresh)
	}
	if resp.Company.ID != "" {
		c.session.SetCompanyID(resp.Company.ID)
		c.SetCompanySlug(resp.Company.Slug)
	}

	return &resp, nil
}

// RefreshSession forces a token refresh regardless of the access token's
// remaining lifetime. Concurrent callers share a single exchange.
func (c *Client) RefreshSession(ctx context.Context) error {
	_, err := c.refreshAccessToken(ctx)
	return err
}

// Logout clears the session from memory, durable storage and cookies.
// Subsequent requests carry no Authorization header.
func (c *Client) Logout(ctx context.Context) {
	c.session.Clear()
	c.SetCompanySlug("")
	logger.GetLogger(ctx).Debug("storefront: session cleared")
}
