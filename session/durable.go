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

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wso2/storefront-platform/storefront-service/utils"
)

const durableFileName = "session.json"

// durableStore is a file-backed key-value store, the durable counterpart
// of the in-memory session state. Callers hold the Store mutex, so no
// extra locking happens here.
type durableStore struct {
	path   string
	values map[string]string
}

func openDurable(dir string) (*durableStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: failed to create storage dir: %v", utils.ErrStorageUnavailable, err)
	}

	d := &durableStore{
		path:   filepath.Join(dir, durableFileName),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read session file: %v", utils.ErrStorageUnavailable, err)
	}
	if err := json.Unmarshal(data, &d.values); err != nil {
		// A corrupt session file is dropped rather than blocking startup.
		d.values = make(map[string]string)
	}
	return d, nil
}

func (d *durableStore) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *durableStore) Set(key, value string) error {
	d.values[key] = value
	return d.flush()
}

func (d *durableStore) Delete(key string) error {
	delete(d.values, key)
	return d.flush()
}

func (d *durableStore) flush() error {
	data, err := json.Marshal(d.values)
	if err != nil {
		return fmt.Errorf("failed to encode session values: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
