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

// Package session persists the access token, refresh token and company id
// redundantly in memory, a durable key-value store and cookies, so both
// client-side and server-rendered code paths can resolve them.
package session

import (
	"log/slog"
	"net/http"
	"sync"
)

// Storage keys shared by the durable store and the session cookies.
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyCompanyID    = "company_id"
)

// maxCookieValueSize is the advisory limit before a token risks being
// dropped by common cookie size caps.
const maxCookieValueSize = 4096

// Options configures a session store.
type Options struct {
	// StorageDir locates the durable key-value file. Empty disables the
	// durable layer; the store then runs on memory and cookies only.
	StorageDir string

	// CookieMaxAge is the cookie lifetime in seconds.
	CookieMaxAge int

	// CookieSecure marks written cookies Secure.
	CookieSecure bool
}

// Store is the only writer of session state. Readers must go through its
// getters to keep the three persistence layers consistent.
// Read precedence: memory, then durable store, then bound request cookies.
type Store struct {
	opts Options

	mu      sync.RWMutex
	mem     map[string]string
	cleared map[string]bool
	durable *durableStore
	cookies *http.Request
}

// NewStore creates a session store. Durable storage failures are logged
// and the store degrades to memory-only operation.
func NewStore(opts Options) *Store {
	s := &Store{
		opts:    opts,
		mem:     make(map[string]string),
		cleared: make(map[string]bool),
	}
	if opts.StorageDir != "" {
		durable, err := openDurable(opts.StorageDir)
		if err != nil {
			slog.Warn("session: durable storage unavailable, continuing memory-only",
				slog.String("dir", opts.StorageDir),
				slog.String("error", err.Error()))
		} else {
			s.durable = durable
		}
	}
	return s
}

// BindRequest attaches an inbound request whose cookies serve as the
// read fallback of last resort. Used on the server-rendered path, where
// the durable client-side store is unavailable.
func (s *Store) BindRequest(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = r
}

// SetAccessToken stores the access token in all layers. An empty value
// clears it everywhere.
func (s *Store) SetAccessToken(token string) {
	s.set(KeyAccessToken, token)
}

// AccessToken returns the current access token, or "" when absent.
func (s *Store) AccessToken() string {
	return s.get(KeyAccessToken)
}

// SetRefreshToken stores the refresh token in all layers. An empty value
// clears it everywhere.
func (s *Store) SetRefreshToken(token string) {
	s.set(KeyRefreshToken, token)
}

// RefreshToken returns the current refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	return s.get(KeyRefreshToken)
}

// SetCompanyID stores the tenant id in all layers. An empty value clears it.
func (s *Store) SetCompanyID(id string) {
	s.set(KeyCompanyID, id)
}

// CompanyID returns the current tenant id, or "" when absent.
func (s *Store) CompanyID() string {
	return s.get(KeyCompanyID)
}

// Clear removes all session values from every layer. Used on logout and
// on irrecoverable refresh failure.
func (s *Store) Clear() {
	s.set(KeyAccessToken, "")
	s.set(KeyRefreshToken, "")
	s.set(KeyCompanyID, "")
}

func (s *Store) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.mem, key)
		s.cleared[key] = true
	} else {
		s.mem[key] = value
		delete(s.cleared, key)
		if len(value) > maxCookieValueSize {
			slog.Warn("session: value exceeds common cookie size limits and may be dropped by browsers",
				slog.String("key", key),
				slog.Int("size", len(value)))
		}
	}

	if s.durable == nil {
		return
	}
	var err error
	if value == "" {
		err = s.durable.Delete(key)
	} else {
		err = s.durable.Set(key, value)
	}
	if err != nil {
		slog.Warn("session: failed to persist value, continuing with in-memory copy",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (s *Store) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.mem[key]; ok {
		return v
	}
	// An explicit clear must not resurrect stale values from the
	// fallback layers before their deletes are observed.
	if s.cleared[key] {
		return ""
	}
	if s.durable != nil {
		if v, ok := s.durable.Get(key); ok {
			return v
		}
	}
	if s.cookies != nil {
		if c, err := s.cookies.Cookie(key); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// PendingCookies returns the cookies that mirror the current session
// state, including expirations for cleared values. The HTTP boundary is
// responsible for applying them to a response.
func (s *Store) PendingCookies() []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cookies []*http.Cookie
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyCompanyID} {
		if v, ok := s.mem[key]; ok {
			cookies = append(cookies, newCookie(key, v, s.opts))
		} else if s.cleared[key] {
			cookies = append(cookies, expiredCookie(key, s.opts))
		}
	}
	return cookies
}

// WriteCookies applies the pending session cookies to a response.
func (s *Store) WriteCookies(w http.ResponseWriter) {
	for _, c := range s.PendingCookies() {
		http.SetCookie(w, c)
	}
}
