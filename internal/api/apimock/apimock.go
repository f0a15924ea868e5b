// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package apimock provides a api.Service double whose methods can be
// overwritten one by one.
package apimock

import (
	"context"

	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/model"
)

type Client struct {
	Base       api.Service
	Overwrites Overwrites
}

type Overwrites struct {
	ListAssets          func(ctx context.Context) ([]model.Asset, error)
	AssetPage           func(ctx context.Context) (model.AssetPage, error)
	GetAsset            func(ctx context.Context, id string) (model.AssetDetail, error)
	ListStatuses        func(ctx context.Context) ([]model.Status, error)
	ListLocations       func(ctx context.Context) ([]model.Location, error)
	AggregateByStatus   func(ctx context.Context) ([]model.AggregateCount, error)
	AggregateByLocation func(ctx context.Context) ([]model.AggregateCount, error)
	CreateAsset         func(ctx context.Context, in model.AssetInput) error
	UpdateAsset         func(ctx context.Context, id string, in model.AssetInput) error
	DeleteAsset         func(ctx context.Context, id string) error
	Login               func(ctx context.Context, creds model.Credentials) error
	Logout              func(ctx context.Context) error
	Authenticated       func() bool
}

var _ api.Service = (*Client)(nil)

// svc := apimock.New(nil, apimock.Overwrites{ /* overwrite Service methods here... */ })
func New(base api.Service, overwrites Overwrites) *Client {
	return &Client{
		Base:       base,
		Overwrites: overwrites,
	}
}

// --- api.Service implementation ---

func (m *Client) ListAssets(ctx context.Context) ([]model.Asset, error) {
	if m.Overwrites.ListAssets != nil {
		return m.Overwrites.ListAssets(ctx)
	} else if m.Base != nil {
		return m.Base.ListAssets(ctx)
	}
	panic("apimock.Client.ListAssets not implemented")
}
func (m *Client) AssetPage(ctx context.Context) (model.AssetPage, error) {
	if m.Overwrites.AssetPage != nil {
		return m.Overwrites.AssetPage(ctx)
	} else if m.Base != nil {
		return m.Base.AssetPage(ctx)
	}
	panic("apimock.Client.AssetPage not implemented")
}
func (m *Client) GetAsset(ctx context.Context, id string) (model.AssetDetail, error) {
	if m.Overwrites.GetAsset != nil {
		return m.Overwrites.GetAsset(ctx, id)
	} else if m.Base != nil {
		return m.Base.GetAsset(ctx, id)
	}
	panic("apimock.Client.GetAsset not implemented")
}
func (m *Client) ListStatuses(ctx context.Context) ([]model.Status, error) {
	if m.Overwrites.ListStatuses != nil {
		return m.Overwrites.ListStatuses(ctx)
	} else if m.Base != nil {
		return m.Base.ListStatuses(ctx)
	}
	panic("apimock.Client.ListStatuses not implemented")
}
func (m *Client) ListLocations(ctx context.Context) ([]model.Location, error) {
	if m.Overwrites.ListLocations != nil {
		return m.Overwrites.ListLocations(ctx)
	} else if m.Base != nil {
		return m.Base.ListLocations(ctx)
	}
	panic("apimock.Client.ListLocations not implemented")
}
func (m *Client) AggregateByStatus(ctx context.Context) ([]model.AggregateCount, error) {
	if m.Overwrites.AggregateByStatus != nil {
		return m.Overwrites.AggregateByStatus(ctx)
	} else if m.Base != nil {
		return m.Base.AggregateByStatus(ctx)
	}
	panic("apimock.Client.AggregateByStatus not implemented")
}
func (m *Client) AggregateByLocation(ctx context.Context) ([]model.AggregateCount, error) {
	if m.Overwrites.AggregateByLocation != nil {
		return m.Overwrites.AggregateByLocation(ctx)
	} else if m.Base != nil {
		return m.Base.AggregateByLocation(ctx)
	}
	panic("apimock.Client.AggregateByLocation not implemented")
}
func (m *Client) CreateAsset(ctx context.Context, in model.AssetInput) error {
	if m.Overwrites.CreateAsset != nil {
		return m.Overwrites.CreateAsset(ctx, in)
	} else if m.Base != nil {
		return m.Base.CreateAsset(ctx, in)
	}
	panic("apimock.Client.CreateAsset not implemented")
}
func (m *Client) UpdateAsset(ctx context.Context, id string, in model.AssetInput) error {
	if m.Overwrites.UpdateAsset != nil {
		return m.Overwrites.UpdateAsset(ctx, id, in)
	} else if m.Base != nil {
		return m.Base.UpdateAsset(ctx, id, in)
	}
	panic("apimock.Client.UpdateAsset not implemented")
}
func (m *Client) DeleteAsset(ctx context.Context, id string) error {
	if m.Overwrites.DeleteAsset != nil {
		return m.Overwrites.DeleteAsset(ctx, id)
	} else if m.Base != nil {
		return m.Base.DeleteAsset(ctx, id)
	}
	panic("apimock.Client.DeleteAsset not implemented")
}
func (m *Client) Login(ctx context.Context, creds model.Credentials) error {
	if m.Overwrites.Login != nil {
		return m.Overwrites.Login(ctx, creds)
	} else if m.Base != nil {
		return m.Base.Login(ctx, creds)
	}
	panic("apimock.Client.Login not implemented")
}
func (m *Client) Logout(ctx context.Context) error {
	if m.Overwrites.Logout != nil {
		return m.Overwrites.Logout(ctx)
	} else if m.Base != nil {
		return m.Base.Logout(ctx)
	}
	panic("apimock.Client.Logout not implemented")
}
func (m *Client) Authenticated() bool {
	if m.Overwrites.Authenticated != nil {
		return m.Overwrites.Authenticated()
	} else if m.Base != nil {
		return m.Base.Authenticated()
	}
	panic("apimock.Client.Authenticated not implemented")
}
