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
	"fmt"
	"net/http"
	"time"

	"github.com/wso2/storefront-platform/storefront-service/config"
	"github.com/wso2/storefront-platform/storefront-service/session"
)

// Factory is the single construction point for storefront clients, so
// client and session wiring cannot drift between code paths.
type Factory struct {
	api  config.APIConfig
	sess config.SessionConfig
}

// NewFactory creates a client factory from application configuration.
func NewFactory(api config.APIConfig, sess config.SessionConfig) *Factory {
	return &Factory{api: api, sess: sess}
}

// NewProcessClient builds the long-lived client backed by the durable
// session store. One instance per process.
func (f *Factory) NewProcessClient() (*Client, *session.Store, error) {
	store := session.NewStore(session.Options{
		StorageDir:   f.sess.StorageDir,
		CookieMaxAge: f.sess.CookieMaxAgeSeconds,
		CookieSecure: f.sess.CookieSecure,
	})
	client, err := f.newClient(store)
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

// ForRequest builds a request-scoped client whose session reads fall
// back to the inbound request's cookies. The durable store is not used
// on this path; cookies are the cross-context transport.
func (f *Factory) ForRequest(r *http.Request) (*Client, *session.Store, error) {
	store := session.NewStore(session.Options{
		CookieMaxAge: f.sess.CookieMaxAgeSeconds,
		CookieSecure: f.sess.CookieSecure,
	})
	store.BindRequest(r)
	client, err := f.newClient(store)
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

func (f *Factory) newClient(store *session.Store) (*Client, error) {
	client, err := NewClient(&Config{
		BaseURL:            f.api.BaseURL,
		DefaultCompanySlug: f.api.DefaultCompanySlug,
		Session:            store,
		Timeout:            time.Duration(f.api.RequestTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront client: %w", err)
	}
	return client, nil
}
