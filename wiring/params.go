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

package wiring

import (
	"log/slog"
	"time"

	"github.com/wso2/storefront-platform/storefront-service/clients/serverread"
	"github.com/wso2/storefront-platform/storefront-service/clients/storefront"
	"github.com/wso2/storefront-platform/storefront-service/config"
	"github.com/wso2/storefront-platform/storefront-service/server"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	Logger *slog.Logger

	// ClientFactory builds storefront clients, one per process or per
	// inbound request
	ClientFactory *storefront.Factory

	// Reader is the shared server-side read client
	Reader *serverread.Client

	// Server exposes the page-data endpoints
	Server *server.Server
}

func ProvideConfigFromPtr(cfg *config.Config) config.Config {
	return *cfg
}

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

// ProvideClientFactory creates the storefront client factory
func ProvideClientFactory(cfg config.Config) *storefront.Factory {
	return storefront.NewFactory(cfg.API, cfg.Session)
}

// ProvideServerReader creates the server-side read client
func ProvideServerReader(cfg config.Config) *serverread.Client {
	return serverread.New(&serverread.Config{
		BaseURL:            cfg.API.BaseURL,
		DefaultCompanySlug: cfg.API.DefaultCompanySlug,
		Timeout:            time.Duration(cfg.API.RequestTimeoutSeconds) * time.Second,
		RetryWaitMin:       time.Duration(cfg.API.RetryWaitMinSeconds) * time.Second,
		RetryWaitMax:       time.Duration(cfg.API.RetryWaitMaxSeconds) * time.Second,
		RetryMax:           cfg.API.RetryAttemptsMax,
	})
}
