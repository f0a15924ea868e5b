// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"

	"github.com/toeirei/assetdesk/internal/model"
)

// ListStatuses returns every asset status.
func (c *Client) ListStatuses(ctx context.Context) ([]model.Status, error) {
	return getResults[model.Status](ctx, c, "list statuses", "/status/", nil)
}

// ListLocations returns every asset location.
func (c *Client) ListLocations(ctx context.Context) ([]model.Location, error) {
	return getResults[model.Location](ctx, c, "list locations", "/location/", nil)
}

// AggregateByStatus returns asset counts grouped by status.
func (c *Client) AggregateByStatus(ctx context.Context) ([]model.AggregateCount, error) {
	out, err := getResults[model.AggregateCount](ctx, c, "aggregate by status", "/home/agg-asset-by-status/", nil)
	return withKind(out, model.GroupStatus), err
}

// AggregateByLocation returns asset counts grouped by location.
func (c *Client) AggregateByLocation(ctx context.Context) ([]model.AggregateCount, error) {
	out, err := getResults[model.AggregateCount](ctx, c, "aggregate by location", "/home/agg-asset-by-location/", nil)
	return withKind(out, model.GroupLocation), err
}

// withKind tags entries that arrived under the neutral "group" key.
func withKind(aggs []model.AggregateCount, kind model.GroupKind) []model.AggregateCount {
	for i := range aggs {
		if aggs[i].Kind == "" {
			aggs[i].Kind = kind
		}
	}
	return aggs
}
