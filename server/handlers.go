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
	"errors"
	"log/slog"
	"net/http"

	"github.com/wso2/storefront-platform/storefront-service/clients/serverread"
	"github.com/wso2/storefront-platform/storefront-service/clients/storefront"
	"github.com/wso2/storefront-platform/storefront-service/middleware/logger"
	"github.com/wso2/storefront-platform/storefront-service/models"
	"github.com/wso2/storefront-platform/storefront-service/utils"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	client, store, err := s.factory.ForRequest(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp, err := client.Login(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Session cookies are the transport back to the browser.
	store.WriteCookies(w)
	respondJSON(w, http.StatusOK, map[string]any{
		"user":    resp.User,
		"company": resp.Company,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	client, store, err := s.factory.ForRequest(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	client.Logout(r.Context())
	store.WriteCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProductsPage(w http.ResponseWriter, r *http.Request) {
	reader := s.reader.ForRequest(r)

	var products []models.Product
	if err := reader.GetList(r.Context(), "/products/", r.URL.Query(), &products, serverread.Public()); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleArticlePage(w http.ResponseWriter, r *http.Request) {
	reader := s.reader.ForRequest(r)

	var article models.Article
	found, err := reader.GetSingle(r.Context(), "/articles/"+r.PathValue("slug")+"/", nil, &article, serverread.Public())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !found {
		// Unpublished content renders an empty state, not an error page.
		respondJSON(w, http.StatusOK, map[string]any{"article": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

func (s *Server) handleAccountOrders(w http.ResponseWriter, r *http.Request) {
	client, store, err := s.factory.ForRequest(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	orders, err := client.ListOrders(r.Context(), r.URL.Query())
	if err != nil {
		// The refresh may have cleared or rotated tokens; reflect that
		// in the response cookies either way.
		store.WriteCookies(w)
		s.respondError(w, r, err)
		return
	}

	store.WriteCookies(w)
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// respondError maps client errors onto page-data responses. Session
// expiry becomes a login redirect here, at the boundary.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, utils.ErrSessionExpired) {
		respondJSON(w, http.StatusUnauthorized, map[string]string{
			"error":    "session expired",
			"redirect": "/login",
		})
		return
	}

	var apiErr *storefront.APIError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.Status, map[string]string{
			"error": apiErr.Message,
			"code":  apiErr.Code,
		})
		return
	}

	logger.GetLogger(r.Context()).Error("unhandled backend error",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	respondJSON(w, http.StatusBadGateway, map[string]string{"error": "backend unavailable"})
}
