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

// Package server exposes the storefront page-data endpoints. It is the
// HTTP boundary that applies session cookies and translates session
// expiry into a login redirect, keeping that policy out of the client.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/wso2/storefront-platform/storefront-service/clients/serverread"
	"github.com/wso2/storefront-platform/storefront-service/clients/storefront"
	"github.com/wso2/storefront-platform/storefront-service/config"
	"github.com/wso2/storefront-platform/storefront-service/middleware"
	"github.com/wso2/storefront-platform/storefront-service/middleware/logger"
)

// Server holds the wired dependencies of the page-data endpoints.
type Server struct {
	cfg     config.Config
	factory *storefront.Factory
	reader  *serverread.Client
}

// New creates the server.
func New(cfg config.Config, factory *storefront.Factory, reader *serverread.Client) *Server {
	return &Server{cfg: cfg, factory: factory, reader: reader}
}

// Handler builds the HTTP handler with middleware and routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /session/login", s.handleLogin)
	mux.HandleFunc("POST /session/logout", s.handleLogout)
	mux.HandleFunc("GET /page/products", s.handleProductsPage)
	mux.HandleFunc("GET /page/articles/{slug}", s.handleArticlePage)
	mux.HandleFunc("GET /page/account/orders", s.handleAccountOrders)

	// Apply middleware in reverse order (last middleware is applied first)
	handler := http.Handler(mux)
	handler = logger.RequestLogger()(handler)
	handler = middleware.AddCorrelationID()(handler)
	handler = middleware.RecovererOnPanic()(handler)

	return handler
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
