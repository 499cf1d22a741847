// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeFieldName(t *testing.T) {
	cases := map[string]string{
		"email":            "Email",
		"first_name":       "First Name",
		"company_slug":     "Company Slug",
		"shipping_address": "Shipping Address",
		"":                 "",
		"a":                "A",
	}
	for in, want := range cases {
		assert.Equal(t, want, HumanizeFieldName(in), "input %q", in)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcde...", TruncateString("abcdefghij", 5))
	assert.Equal(t, "", TruncateString("anything", 0))

	// Cuts must land on rune boundaries, not split a UTF-8 sequence.
	assert.Equal(t, "héll...", TruncateString("héllo wörld", 4))
	assert.Equal(t, "日本...", TruncateString("日本語のテキスト", 2))
}
