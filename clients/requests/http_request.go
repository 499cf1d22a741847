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

package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// UploadFile is a single file part of a multipart upload.
type UploadFile struct {
	FileName string
	Content  io.Reader
}

// HttpRequest describes an outbound API request. Name identifies the
// operation in logs and error messages.
type HttpRequest struct {
	Name   string
	URL    string
	Method string

	headers     map[string]string
	queryParams url.Values
	body        []byte
	contentType string
	buildErr    error
}

// SetHeader sets a request header, replacing any previous value.
func (r *HttpRequest) SetHeader(key, value string) {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
}

// SetQueryParam adds a query string parameter.
func (r *HttpRequest) SetQueryParam(key, value string) {
	if r.queryParams == nil {
		r.queryParams = url.Values{}
	}
	r.queryParams.Add(key, value)
}

// SetQueryParams adds all values as query string parameters.
func (r *HttpRequest) SetQueryParams(params url.Values) {
	for key, values := range params {
		for _, v := range values {
			r.SetQueryParam(key, v)
		}
	}
}

// SetJson marshals body as the JSON request payload.
func (r *HttpRequest) SetJson(body any) {
	data, err := json.Marshal(body)
	if err != nil {
		r.buildErr = fmt.Errorf("failed to marshal request body: %w", err)
		return
	}
	r.body = data
	r.contentType = "application/json"
}

// SetFormData url-encodes data as the request payload.
func (r *HttpRequest) SetFormData(data map[string]string) {
	form := url.Values{}
	for key, value := range data {
		form.Set(key, value)
	}
	r.body = []byte(form.Encode())
	r.contentType = "application/x-www-form-urlencoded"
}

// SetMultipart builds a multipart form payload. A single file uses the
// "file" field name, several files use "files[]". fields are flattened
// into plain form fields.
func (r *HttpRequest) SetMultipart(files []UploadFile, fields map[string]string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fieldName := "file"
	if len(files) > 1 {
		fieldName = "files[]"
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(fieldName, f.FileName)
		if err != nil {
			r.buildErr = fmt.Errorf("failed to create multipart file %q: %w", f.FileName, err)
			return
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			r.buildErr = fmt.Errorf("failed to copy multipart file %q: %w", f.FileName, err)
			return
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			r.buildErr = fmt.Errorf("failed to write multipart field %q: %w", key, err)
			return
		}
	}
	if err := writer.Close(); err != nil {
		r.buildErr = fmt.Errorf("failed to finalize multipart payload: %w", err)
		return
	}

	r.body = buf.Bytes()
	r.contentType = writer.FormDataContentType()
}

// buildHttpRequest assembles the net/http request with headers, query
// parameters and a request id for cross-service tracing.
func (r *HttpRequest) buildHttpRequest(ctx context.Context) (*http.Request, error) {
	if r.buildErr != nil {
		return nil, r.buildErr
	}

	requestURL := r.URL
	if len(r.queryParams) > 0 {
		separator := "?"
		if strings.Contains(requestURL, "?") {
			separator = "&"
		}
		requestURL += separator + r.queryParams.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, requestURL, body)
	if err != nil {
		return nil, err
	}

	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range r.headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}
