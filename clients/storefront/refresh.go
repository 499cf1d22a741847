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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wso2/storefront-platform/storefront-service/clients/requests"
	"github.com/wso2/storefront-platform/storefront-service/middleware/logger"
	"github.com/wso2/storefront-platform/storefront-service/models"
	"github.com/wso2/storefront-platform/storefront-service/utils"
)

// expiryBuffer is the time before actual expiry when we consider the
// access token expired, so it does not lapse mid-request.
const expiryBuffer = 30 * time.Second

// refreshKey collapses concurrent refresh attempts into one network call.
const refreshKey = "refresh"

// refreshAccessToken exchanges the refresh token for a new access token.
// Concurrent callers share a single in-flight exchange and observe the
// same outcome. On failure both tokens are cleared and the session is
// reported expired; the HTTP boundary decides what to do about it.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, shared := c.refreshGroup.Do(refreshKey, func() (any, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			return nil, fmt.Errorf("no refresh token available: %w", utils.ErrSessionExpired)
		}

		req := &requests.HttpRequest{
			Name:   "storefront.refreshAccessToken",
			URL:    c.apiBase + "/auth/refresh/",
			Method: http.MethodPost,
		}
		req.SetJson(models.RefreshRequest{Refresh: refreshToken})
		req.SetHeader(HeaderCompanySlug, c.CompanySlug())

		var resp models.RefreshResponse
		if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&resp, http.StatusOK); err != nil {
			c.session.SetAccessToken("")
			c.session.SetRefreshToken("")
			return nil, fmt.Errorf("token refresh failed: %v: %w", err, utils.ErrSessionExpired)
		}
		if resp.Access == "" {
			c.session.SetAccessToken("")
			c.session.SetRefreshToken("")
			return nil, fmt.Errorf("empty access token in refresh response: %w", utils.ErrSessionExpired)
		}

		c.session.SetAccessToken(resp.Access)
		if resp.Refresh != "" {
			// The backend rotated the refresh token; the old one is dead.
			c.session.SetRefreshToken(resp.Refresh)
		}

		logger.GetLogger(ctx).Debug("storefront: refreshed access token",
			slog.Bool("rotated_refresh", resp.Refresh != ""))
		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.GetLogger(ctx).Debug("storefront: joined in-flight token refresh")
	}
	return v.(string), nil
}

// ensureFreshToken proactively refreshes a JWT access token that is about
// to expire. Opaque tokens are left to reactive 401 handling.
func (c *Client) ensureFreshToken(ctx context.Context) {
	token := c.session.AccessToken()
	if token == "" || c.session.RefreshToken() == "" {
		return
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if time.Now().Add(expiryBuffer).Before(exp.Time) {
		return
	}

	if _, err := c.refreshAccessToken(ctx); err != nil {
		logger.GetLogger(ctx).Debug("storefront: proactive refresh failed, deferring to response handling",
			slog.String("error", err.Error()))
	}
}
