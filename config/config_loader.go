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

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Version is overridable at build time via ldflags
var Version = "dev"

var config *Config

func GetConfig() *Config {
	return config
}

func init() {
	loadEnvs()
}

func loadEnvs() {
	config = &Config{}

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath != "" {
		err := godotenv.Load(envFilePath)
		if err != nil {
			panic(err)
		}
	}

	r := &configReader{}
	config.PackageVersion = r.readOptionalString("SFP_VERSION", Version)
	config.ServerHost = r.readOptionalString("SERVER_HOST", "")
	config.ServerPort = int(r.readOptionalInt64("SERVER_PORT", 8080))
	config.AutoMaxProcsEnabled = r.readOptionalBool("AUTO_MAX_PROCS_ENABLED", true)

	// Logging configuration
	config.LogLevel = r.readOptionalString("LOG_LEVEL", "INFO")

	// HTTP Server timeout configurations
	config.ReadTimeoutSeconds = int(r.readOptionalInt64("HTTP_READ_TIMEOUT_SECONDS", 10))
	config.WriteTimeoutSeconds = int(r.readOptionalInt64("HTTP_WRITE_TIMEOUT_SECONDS", 90))
	config.IdleTimeoutSeconds = int(r.readOptionalInt64("HTTP_IDLE_TIMEOUT_SECONDS", 60))
	config.MaxHeaderBytes = int(r.readOptionalInt64("HTTP_MAX_HEADER_BYTES", 65536)) // 1024 * 64

	// Backend API configuration
	config.API = APIConfig{
		BaseURL:               r.readOptionalString("API_BASE_URL", "https://api.storefront-platform.io"),
		DefaultCompanySlug:    r.readOptionalString("API_DEFAULT_COMPANY_SLUG", "storefront"),
		RequestTimeoutSeconds: int(r.readOptionalInt64("API_REQUEST_TIMEOUT_SECONDS", 30)),
		RetryWaitMinSeconds:   int(r.readOptionalInt64("API_RETRY_WAIT_MIN_SECONDS", 1)),
		RetryWaitMaxSeconds:   int(r.readOptionalInt64("API_RETRY_WAIT_MAX_SECONDS", 10)),
		RetryAttemptsMax:      int(r.readOptionalInt64("API_RETRY_ATTEMPTS_MAX", 3)),
	}

	// Session persistence configuration
	config.Session = SessionConfig{
		StorageDir:          r.readOptionalString("SESSION_STORAGE_DIR", "./data/session"),
		CookieMaxAgeSeconds: int(r.readOptionalInt64("SESSION_COOKIE_MAX_AGE_SECONDS", 31536000)), // ~1 year
		CookieSecure:        r.readOptionalBool("SESSION_COOKIE_SECURE", false),
	}

	validateHTTPServerConfigs(config, r)
	validateAPIConfigs(config, r)

	r.logAndExitIfErrorsFound()

	slog.Info("configReader: configs loaded")
}

func validateHTTPServerConfigs(cfg *Config, r *configReader) {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		r.addError("SERVER_PORT must be between 1 and 65535")
	}
	if cfg.ReadTimeoutSeconds < 1 {
		r.addError("HTTP_READ_TIMEOUT_SECONDS must be positive")
	}
	if cfg.WriteTimeoutSeconds < 1 {
		r.addError("HTTP_WRITE_TIMEOUT_SECONDS must be positive")
	}
	if cfg.IdleTimeoutSeconds < 1 {
		r.addError("HTTP_IDLE_TIMEOUT_SECONDS must be positive")
	}
	if cfg.MaxHeaderBytes < 1024 {
		r.addError("HTTP_MAX_HEADER_BYTES must be at least 1024")
	}
}

func validateAPIConfigs(cfg *Config, r *configReader) {
	if cfg.API.BaseURL == "" {
		r.addError("API_BASE_URL must not be empty")
	}
	if cfg.API.DefaultCompanySlug == "" {
		r.addError("API_DEFAULT_COMPANY_SLUG must not be empty")
	}
	if cfg.API.RequestTimeoutSeconds < 1 {
		r.addError("API_REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if cfg.API.RetryAttemptsMax < 0 {
		r.addError("API_RETRY_ATTEMPTS_MAX must not be negative")
	}
	if cfg.Session.CookieMaxAgeSeconds < 1 {
		r.addError("SESSION_COOKIE_MAX_AGE_SECONDS must be positive")
	}
}
