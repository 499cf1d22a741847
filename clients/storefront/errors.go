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
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/wso2/storefront-platform/storefront-service/utils"
)

// APIError is the structured error for a non-2xx backend response.
type APIError struct {
	// Message is the human-readable message shown to users
	Message string

	// Code is the backend-supplied error code, or "HTTP_<status>"
	Code string

	// Status is the HTTP status code
	Status int

	// URL is the request URL the error came from
	URL string

	// Body is the decoded response body, when it was a JSON object,
	// for callers that want per-field detail
	Body map[string]any

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// reservedErrorKeys are body keys that carry error metadata rather than
// per-field validation messages.
var reservedErrorKeys = map[string]struct{}{
	"error":   {},
	"detail":  {},
	"message": {},
	"code":    {},
}

// buildAPIError extracts the best available message from an error body.
// It must never fail itself: malformed or empty bodies degrade to a
// generic message built from the status line.
func buildAPIError(status int, statusText string, rawBody []byte, requestURL string) *APIError {
	apiErr := &APIError{
		Message: fmt.Sprintf("HTTP %d: %s", status, statusText),
		Code:    fmt.Sprintf("HTTP_%d", status),
		Status:  status,
		URL:     requestURL,
		cause:   statusSentinel(status),
	}

	if len(rawBody) == 0 {
		return apiErr
	}
	var body map[string]any
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return apiErr
	}
	apiErr.Body = body

	if code, ok := body["code"].(string); ok && code != "" {
		apiErr.Code = code
	}

	// Per-field validation messages outside the reserved keys win.
	if msg := fieldErrorsMessage(body, reservedErrorKeys); msg != "" {
		apiErr.Message = msg
		return apiErr
	}

	switch errValue := body["error"].(type) {
	case map[string]any:
		if msg := fieldErrorsMessage(errValue, nil); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	case string:
		if errValue != "" {
			apiErr.Message = errValue
			return apiErr
		}
	}

	if msg, ok := body["message"].(string); ok && msg != "" {
		apiErr.Message = msg
		return apiErr
	}
	if msg, ok := body["detail"].(string); ok && msg != "" {
		apiErr.Message = msg
		return apiErr
	}

	return apiErr
}

// statusSentinel maps a status class onto the matching sentinel error so
// callers can branch with errors.Is instead of inspecting status codes.
func statusSentinel(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return utils.ErrBadRequest
	case status == http.StatusUnauthorized:
		return utils.ErrUnauthorized
	case status == http.StatusForbidden:
		return utils.ErrForbidden
	case status == http.StatusNotFound:
		return utils.ErrNotFound
	case status >= 500:
		return utils.ErrServiceUnavailable
	}
	return nil
}

// fieldErrorsMessage joins "<Field Name>: <messages>" across fields,
// title-casing and underscore-to-space converting field names. Fields
// are sorted so the message is deterministic.
func fieldErrorsMessage(body map[string]any, reserved map[string]struct{}) string {
	keys := make([]string, 0, len(body))
	for key := range body {
		if _, ok := reserved[key]; ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		messages := flattenMessages(body[key])
		if len(messages) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", utils.HumanizeFieldName(key), strings.Join(messages, ", ")))
	}
	return strings.Join(parts, "; ")
}

func flattenMessages(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var messages []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				messages = append(messages, s)
			}
		}
		return messages
	default:
		return nil
	}
}
