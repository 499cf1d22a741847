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

	"github.com/wso2/storefront-platform/storefront-service/models"
)

// GetCart retrieves the current cart. Pricing is server-owned.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.Get(ctx, "/cart/", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product to the cart and returns the repriced cart.
func (c *Client) AddCartItem(ctx context.Context, req models.AddCartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.Post(ctx, "/cart/items/", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem changes the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, req models.UpdateCartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.Patch(ctx, "/cart/items/"+itemID+"/", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.Delete(ctx, "/cart/items/"+itemID+"/", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
