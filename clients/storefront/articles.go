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

// ListArticles retrieves CMS articles.
func (c *Client) ListArticles(ctx context.Context, query url.Values) ([]models.Article, error) {
	var articles []models.Article
	if err := c.Get(ctx, "/articles/", query, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle retrieves one article by slug.
func (c *Client) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := c.Get(ctx, "/articles/"+slug+"/", nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}
