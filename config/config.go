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

package config

// Config holds all configuration for the application
type Config struct {
	PackageVersion      string
	ServerHost          string
	ServerPort          int
	AutoMaxProcsEnabled bool
	LogLevel            string

	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int

	// Backend API configuration
	API APIConfig

	// Session persistence configuration
	Session SessionConfig
}

// APIConfig holds backend API configuration
type APIConfig struct {
	// BaseURL is the backend origin; all endpoints are relative to BaseURL + "/api"
	BaseURL string

	// DefaultCompanySlug is sent as the tenant slug header when no company
	// has been resolved yet, so public endpoints route correctly
	DefaultCompanySlug string

	// RequestTimeoutSeconds bounds a single backend request attempt
	RequestTimeoutSeconds int

	// Retry tuning for the server-side read client (idempotent GETs only)
	RetryWaitMinSeconds int
	RetryWaitMaxSeconds int
	RetryAttemptsMax    int
}

// SessionConfig holds token persistence configuration
type SessionConfig struct {
	// StorageDir is the directory for the durable key-value store.
	// Empty disables durable persistence (memory and cookies only).
	StorageDir string

	// CookieMaxAgeSeconds is the lifetime of session cookies (~1 year)
	CookieMaxAgeSeconds int

	// CookieSecure marks session cookies Secure (set when served over HTTPS)
	CookieSecure bool
}
