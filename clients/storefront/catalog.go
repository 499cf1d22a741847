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
	"context"
	"net/url"

	"github.com/wso2/storefront-platform/storefront-service/models"
)

// ListProducts retrieves catalog products. query carries backend-side
// filtering and pagination parameters untouched.
func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]models.Product, error) {
	var products []models.Product
	if err := c.Get(ctx, "/products/", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := c.Get(ctx, "/products/"+slug+"/", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories retrieves the category tree as a flat list.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.Get(ctx, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
