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
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// configReader reads env vars and collects errors so all configuration
// problems are reported together before exiting.
type configReader struct {
	errors []string
}

func (r *configReader) addError(msg string) {
	r.errors = append(r.errors, msg)
}

func (r *configReader) readOptionalString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

func (r *configReader) readOptionalInt64(key string, fallback int64) int64 {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		r.addError(fmt.Sprintf("env var %s must be an integer, got %q", key, val))
		return fallback
	}
	return parsed
}

func (r *configReader) readOptionalBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		r.addError(fmt.Sprintf("env var %s must be a boolean, got %q", key, val))
		return fallback
	}
	return parsed
}

func (r *configReader) logAndExitIfErrorsFound() {
	if len(r.errors) == 0 {
		return
	}
	for _, e := range r.errors {
		slog.Error("configReader: invalid configuration", "error", e)
	}
	os.Exit(1)
}
