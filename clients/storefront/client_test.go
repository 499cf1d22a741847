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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/storefront-platform/storefront-service/clients/requests"
	"github.com/wso2/storefront-platform/storefront-service/models"
	"github.com/wso2/storefront-platform/storefront-service/session"
	"github.com/wso2/storefront-platform/storefront-service/utils"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *session.Store) {
	t.Helper()
	store := session.NewStore(session.Options{CookieMaxAge: 3600})
	client, err := NewClient(&Config{
		BaseURL:            baseURL,
		DefaultCompanySlug: "storefront",
		Session:            store,
		Timeout:            5 * time.Second,
	})
	require.NoError(t, err)
	return client, store
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}))
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("tok-1")
	store.SetCompanyID("company-1")
	client.SetCompanySlug("acme")

	var out map[string]bool
	require.NoError(t, client.Post(context.Background(), "/cart/items/", map[string]int{"quantity": 1}, &out))

	assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	assert.Equal(t, "acme", got.Get(HeaderCompanySlug))
	assert.Equal(t, "company-1", got.Get(HeaderCompanyID))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestDefaultSlugWithoutTenant(t *testing.T) {
	var slug string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug = r.Header.Get(HeaderCompanySlug)
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	var out []any
	require.NoError(t, client.Get(context.Background(), "/products/", nil, &out))
	assert.Equal(t, "storefront", slug, "default slug must be sent so public endpoints resolve")
}

func TestWithoutAuthOmitsAuthorization(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]string{"access": "a", "refresh": "r"})
	}))
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("stale-token")

	var out map[string]string
	require.NoError(t, client.Post(context.Background(), "/auth/login/", map[string]string{}, &out, WithoutAuth()))
	assert.Empty(t, auth, "login must not carry a stale token")
}

func TestRawTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	var out string
	require.NoError(t, client.Get(context.Background(), "/ping/", nil, &out))
	assert.Equal(t, "pong", out)
}

func TestSingleFlightRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// Hold the refresh open long enough for both callers to pile in.
		time.Sleep(150 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh-token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("expired-token")
	store.SetRefreshToken("refresh-1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out []any
			errs[i] = client.Get(context.Background(), "/orders/", nil, &out)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent 401s must share one refresh call")
	assert.Equal(t, "fresh-token", store.AccessToken())
}

func TestRetryOnceBound(t *testing.T) {
	var orderCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		orderCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "still unauthorized"})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "new-token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("expired-token")
	store.SetRefreshToken("refresh-1")

	var out []any
	err := client.Get(context.Background(), "/orders/", nil, &out)
	require.Error(t, err)

	assert.Equal(t, int32(2), orderCalls.Load(), "original attempt plus exactly one replay")
	assert.Equal(t, int32(1), refreshCalls.Load(), "the replay's 401 must not trigger a second refresh")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, errors.Is(err, utils.ErrSessionExpired))
}

func TestRefreshTokenRotation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": "cart-1", "items": []any{}})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.Refresh)
		writeJSON(w, http.StatusOK, map[string]string{"access": "access-2", "refresh": "refresh-2"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("access-1")
	store.SetRefreshToken("refresh-1")

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)

	assert.Equal(t, "access-2", store.AccessToken())
	assert.Equal(t, "refresh-2", store.RefreshToken(), "rotated refresh token must replace the old one")
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh token expired"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("access-1")
	store.SetRefreshToken("refresh-1")

	var out []any
	err := client.Get(context.Background(), "/orders/", nil, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrSessionExpired))

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestNoRefreshWithoutRefreshToken(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "unauthorized"})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "x"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("access-1")

	var out []any
	err := client.Get(context.Background(), "/orders/", nil, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrSessionExpired))
	assert.Zero(t, refreshCalls.Load())
}

func TestProactiveRefreshOfExpiringJWT(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	var orderCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		orderCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh-token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken(expired)
	store.SetRefreshToken("refresh-1")

	var out []any
	require.NoError(t, client.Get(context.Background(), "/orders/", nil, &out))
	assert.Equal(t, int32(1), orderCalls.Load(), "expiring JWT must be refreshed before the request goes out")
}

func TestLogoutClearsSession(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("access-1")
	store.SetRefreshToken("refresh-1")
	store.SetCompanyID("company-1")

	client.Logout(context.Background())

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	var out []any
	require.NoError(t, client.Get(context.Background(), "/products/", nil, &out))
	assert.Empty(t, auth, "no Authorization header after logout")
}

func TestUploadReplayResendsFileContents(t *testing.T) {
	var bodies []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/files/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		bodies = append(bodies, string(content))

		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "f1"})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh-token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	store.SetAccessToken("expired-token")
	store.SetRefreshToken("refresh-1")

	var out map[string]string
	err := client.Upload(context.Background(), "/files/", []requests.UploadFile{
		{FileName: "a.txt", Content: strings.NewReader("hello-world")},
	}, map[string]string{"kind": "avatar"}, &out)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.Equal(t, "hello-world", bodies[0])
	assert.Equal(t, "hello-world", bodies[1], "post-refresh replay must carry the full file body")
}

func TestLoginThenExpiredTokenScenario(t *testing.T) {
	var refreshCalls atomic.Int32
	expired := atomic.Bool{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "acme", req.CompanySlug)
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Access:  "access-1",
			Refresh: "refresh-1",
			User:    models.User{ID: "u1", Username: req.Username},
			Company: &models.Company{ID: "company-1", Name: "Acme", Slug: "acme"},
		})
	})
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		want := "Bearer access-1"
		if expired.Load() {
			want = "Bearer access-2"
		}
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		assert.Equal(t, "company-1", r.Header.Get(HeaderCompanyID))
		assert.Equal(t, "acme", r.Header.Get(HeaderCompanySlug))
		writeJSON(w, http.StatusOK, []models.Order{{ID: "o1", Number: "1001"}})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "access-2"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, store := newTestClient(t, srv.URL)
	client.SetCompanySlug("acme")

	resp, err := client.Login(context.Background(), models.LoginRequest{Username: "jo", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "access-1", store.AccessToken())
	assert.Equal(t, "refresh-1", store.RefreshToken())
	assert.Equal(t, "company-1", store.CompanyID())

	orders, err := client.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	// The backend now considers access-1 expired.
	expired.Store(true)

	orders, err = client.ListOrders(context.Background(), nil)
	require.NoError(t, err, "caller must only observe the final successful result")
	require.Len(t, orders, 1)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "access-2", store.AccessToken())
}
