// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/toeirei/assetdesk/internal/model"
)

func pageQuery() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(FirstPage))
	q.Set("page_size", strconv.Itoa(PageSize))
	return q
}

func assetPath(id string) string {
	return "/asset/" + url.PathEscape(id)
}

// ListAssets returns the results of the first asset page in server order.
func (c *Client) ListAssets(ctx context.Context) ([]model.Asset, error) {
	return getResults[model.Asset](ctx, c, "list assets", "/asset/", pageQuery())
}

// AssetPage returns the first asset page including its count metadata.
func (c *Client) AssetPage(ctx context.Context) (model.AssetPage, error) {
	const op = "list assets"
	data, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/asset/", query: pageQuery(), auth: true})
	if err != nil {
		return model.AssetPage{}, err
	}
	var env struct {
		model.AssetPage
		Results *[]model.Asset `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return model.AssetPage{}, malformed(op, err)
	}
	if env.Results == nil {
		return model.AssetPage{}, malformed(op, errors.New("missing results"))
	}
	page := env.AssetPage
	page.Results = *env.Results
	if page.Results == nil {
		page.Results = []model.Asset{}
	}
	return page, nil
}

// GetAsset returns the denormalized detail of one asset.
func (c *Client) GetAsset(ctx context.Context, id string) (model.AssetDetail, error) {
	const op = "get asset"
	if id == "" {
		return model.AssetDetail{}, &InputError{Fields: []string{"id"}}
	}
	data, err := c.do(ctx, call{op: op, method: http.MethodGet, path: assetPath(id), auth: true})
	if err != nil {
		return model.AssetDetail{}, err
	}
	var d model.AssetDetail
	if err := json.Unmarshal(data, &d); err != nil {
		return model.AssetDetail{}, malformed(op, err)
	}
	if d.ID == "" {
		return model.AssetDetail{}, malformed(op, errors.New("missing id"))
	}
	return d, nil
}

// CreateAsset posts a new asset. The response body is ignored.
func (c *Client) CreateAsset(ctx context.Context, in model.AssetInput) error {
	if err := c.validateStruct(in); err != nil {
		return err
	}
	_, err := c.do(ctx, call{op: "create asset", method: http.MethodPost, path: "/asset/", body: in, auth: true})
	return err
}

// UpdateAsset replaces name, status and location of asset id.
func (c *Client) UpdateAsset(ctx context.Context, id string, in model.AssetInput) error {
	if id == "" {
		return &InputError{Fields: []string{"id"}}
	}
	if err := c.validateStruct(in); err != nil {
		return err
	}
	_, err := c.do(ctx, call{op: "update asset", method: http.MethodPut, path: assetPath(id), body: in, auth: true})
	return err
}

// DeleteAsset removes asset id.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	if id == "" {
		return &InputError{Fields: []string{"id"}}
	}
	_, err := c.do(ctx, call{op: "delete asset", method: http.MethodDelete, path: assetPath(id), auth: true})
	return err
}
