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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/storefront-platform/storefront-service/clients/serverread"
	"github.com/wso2/storefront-platform/storefront-service/clients/storefront"
	"github.com/wso2/storefront-platform/storefront-service/config"
	"github.com/wso2/storefront-platform/storefront-service/models"
	"github.com/wso2/storefront-platform/storefront-service/session"
)

func newTestServer(backendURL string) http.Handler {
	apiCfg := config.APIConfig{
		BaseURL:               backendURL,
		DefaultCompanySlug:    "storefront",
		RequestTimeoutSeconds: 5,
		RetryWaitMinSeconds:   1,
		RetryWaitMaxSeconds:   1,
		RetryAttemptsMax:      0,
	}
	sessCfg := config.SessionConfig{CookieMaxAgeSeconds: 3600}

	factory := storefront.NewFactory(apiCfg, sessCfg)
	reader := serverread.New(&serverread.Config{
		BaseURL:            backendURL,
		DefaultCompanySlug: "storefront",
	})
	return New(config.Config{API: apiCfg, Session: sessCfg}, factory, reader).Handler()
}

func TestHealth(t *testing.T) {
	handler := newTestServer("http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginSetsCookies(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.LoginResponse{
			Access:  "access-1",
			Refresh: "refresh-1",
			User:    models.User{ID: "u1", Username: "jo"},
			Company: &models.Company{ID: "company-1", Slug: "acme"},
		})
	}))
	defer backend.Close()

	handler := newTestServer(backend.URL)

	body := strings.NewReader(`{"username": "jo", "password": "pw"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/login", body))

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.Equal(t, "access-1", cookies[session.KeyAccessToken])
	assert.Equal(t, "refresh-1", cookies[session.KeyRefreshToken])
	assert.Equal(t, "company-1", cookies[session.KeyCompanyID])

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jo", user["username"])
}

func TestLoginFailurePropagatesBackendMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"password": ["This field is required."]}`))
	}))
	defer backend.Close()

	handler := newTestServer(backend.URL)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{"username": "jo"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Password: This field is required.", resp["error"])
}

func TestLogoutExpiresCookies(t *testing.T) {
	handler := newTestServer("http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodPost, "/session/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.KeyAccessToken, Value: "access-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.Negative(t, c.MaxAge, "cookie %s must be expired on logout", c.Name)
		assert.Empty(t, c.Value)
	}
}

func TestProductsPageRendersEmptyOnBackend404(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	handler := newTestServer(backend.URL)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp["products"])
}

func TestArticlePageNotFound(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles/unpublished/", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	handler := newTestServer(backend.URL)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page/articles/unpublished", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp["article"])
}

func TestAccountOrdersSessionExpiredRedirect(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer backend.Close()

	handler := newTestServer(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/page/account/orders", nil)
	req.AddCookie(&http.Cookie{Name: session.KeyAccessToken, Value: "expired-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/login", resp["redirect"])
}

func TestAccountOrdersTransparentRefresh(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "token expired"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Order{{ID: "o1"}})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access": "fresh-token"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	handler := newTestServer(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/page/account/orders", nil)
	req.AddCookie(&http.Cookie{Name: session.KeyAccessToken, Value: "expired-token"})
	req.AddCookie(&http.Cookie{Name: session.KeyRefreshToken, Value: "refresh-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The refreshed token must travel back to the browser.
	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.Equal(t, "fresh-token", cookies[session.KeyAccessToken])
}
