// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"

	"github.com/toeirei/assetdesk/internal/model"
)

// Service is everything the views need from the API.
type Service interface {
	ListAssets(ctx context.Context) ([]model.Asset, error)
	AssetPage(ctx context.Context) (model.AssetPage, error)
	GetAsset(ctx context.Context, id string) (model.AssetDetail, error)
	ListStatuses(ctx context.Context) ([]model.Status, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	AggregateByStatus(ctx context.Context) ([]model.AggregateCount, error)
	AggregateByLocation(ctx context.Context) ([]model.AggregateCount, error)

	CreateAsset(ctx context.Context, in model.AssetInput) error
	UpdateAsset(ctx context.Context, id string, in model.AssetInput) error
	DeleteAsset(ctx context.Context, id string) error

	Login(ctx context.Context, creds model.Credentials) error
	Logout(ctx context.Context) error
	Authenticated() bool
}

var _ Service = (*Client)(nil)

// OrEmpty degrades a failed read to an empty, non-nil slice.
func OrEmpty[T any](values []T, err error) []T {
	if err != nil || values == nil {
		return []T{}
	}
	return values
}

// OrAbsent degrades a failed detail read to (zero, false).
func OrAbsent[T any](value T, err error) (T, bool) {
	if err != nil {
		var zero T
		return zero, false
	}
	return value, true
}
