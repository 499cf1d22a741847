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

package models

// TokenPair carries an access token and its refresh counterpart.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// User represents the authenticated backend user.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Company is the tenant the session is scoped to.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LoginRequest is the payload for POST /auth/login/.
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CompanySlug string `json:"company_slug"`
}

// LoginResponse is the backend response for a successful login.
type LoginResponse struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	User    User     `json:"user"`
	Company *Company `json:"company,omitempty"`
}

// RefreshRequest is the payload for POST /auth/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the new access token. The backend may rotate
// the refresh token, in which case Refresh is non-empty.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest is the payload for POST /auth/register/.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name"`
	CompanySlug string `json:"company_slug"`
}

// RegisterResponse is the backend response for a successful registration.
// Tokens are present when the backend logs the new user in immediately.
type RegisterResponse struct {
	User    User           `json:"user"`
	Company Company        `json:"company"`
	Tokens  *TokenPair     `json:"tokens,omitempty"`
	Profile map[string]any `json:"profile,omitempty"`
}
