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

// ListOrders retrieves the authenticated user's orders.
func (c *Client) ListOrders(ctx context.Context, query url.Values) ([]models.Order, error) {
	var orders []models.Order
	if err := c.Get(ctx, "/orders/", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder retrieves one order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.Get(ctx, "/orders/"+orderID+"/", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order from the current cart. Lifecycle and
// pricing stay with the backend.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.Post(ctx, "/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
