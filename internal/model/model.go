// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the data structures exchanged with the remote asset API.
// All of them are transient copies: the API owns the rows, the client only
// holds what it fetched for as long as a view needs it.
package model // import "github.com/toeirei/assetdesk/internal/model"

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/toeirei/assetdesk/util/slicest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Asset is the flat representation of a tracked asset as returned by the list endpoint.
type Asset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StatusID   string `json:"status_id"`
	LocationID string `json:"location_id"`
}

// String returns the name followed by the id, e.g. "Laptop-01 (a1b2)".
func (a Asset) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// Status is a lookup row (e.g. "Active", "In Repair").
type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is a lookup row (e.g. "Warehouse A").
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ref is an embedded {id, name} reference as it appears inside detail and
// aggregate payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetDetail is the denormalized read view of an asset with its status and
// location embedded.
type AssetDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   Ref    `json:"status"`
	Location Ref    `json:"location"`
}

// Input converts the detail into the body used by update requests.
func (d AssetDetail) Input() AssetInput {
	return AssetInput{
		Name:       d.Name,
		StatusID:   d.Status.ID,
		LocationID: d.Location.ID,
	}
}

// AssetPage is the envelope of the paginated asset list.
type AssetPage struct {
	Results   []Asset `json:"results"`
	Count     int     `json:"count"`
	Page      int     `json:"page"`
	PageCount int     `json:"page_count"`
	PageSize  int     `json:"page_size"`
}

// AssetInput is the request body for creating or updating an asset.
type AssetInput struct {
	Name       string `json:"name" validate:"required"`
	StatusID   string `json:"status_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GroupKind names the dimension an aggregate was computed over.
type GroupKind string

const (
	GroupStatus   GroupKind = "status"
	GroupLocation GroupKind = "location"
)

// AggregateCount is one bucket of a server-side aggregation. The API nests the
// group under either a "status" or a "location" key; both decode into Group.
type AggregateCount struct {
	Kind  GroupKind `json:"-"`
	Group Ref       `json:"group"`
	Count int       `json:"count"`
}

type aggregateWire struct {
	Status   *Ref `json:"status"`
	Location *Ref `json:"location"`
	Group    *Ref `json:"group"`
	Count    int  `json:"count"`
}

// UnmarshalJSON accepts {status:{..},count}, {location:{..},count} and {group:{..},count}.
func (a *AggregateCount) UnmarshalJSON(data []byte) error {
	var w aggregateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Status != nil:
		a.Kind, a.Group = GroupStatus, *w.Status
	case w.Location != nil:
		a.Kind, a.Group = GroupLocation, *w.Location
	case w.Group != nil:
		a.Group = *w.Group
	default:
		return fmt.Errorf("aggregate entry has no status, location or group")
	}
	a.Count = w.Count
	return nil
}

// MarshalJSON writes the entry back in the API's shape, keyed by Kind.
func (a AggregateCount) MarshalJSON() ([]byte, error) {
	w := aggregateWire{Count: a.Count}
	g := a.Group
	switch a.Kind {
	case GroupStatus:
		w.Status = &g
	case GroupLocation:
		w.Location = &g
	default:
		w.Group = &g
	}
	type plain struct {
		Status   *Ref `json:"status,omitempty"`
		Location *Ref `json:"location,omitempty"`
		Group    *Ref `json:"group,omitempty"`
		Count    int  `json:"count"`
	}
	return json.Marshal(plain(w))
}

// TotalCount sums the counts of all buckets.
func TotalCount(aggs []AggregateCount) int {
	return slicest.ReduceD(aggs, 0, func(a AggregateCount, total int) int { return total + a.Count })
}

// FilterByName keeps the assets whose name contains needle, ignoring case.
// An empty needle keeps everything.
func FilterByName(assets []Asset, needle string) []Asset {
	needle = strings.ToLower(strings.TrimSpace(needle))
	return slicest.Filter(assets, func(a Asset) bool {
		return strings.Contains(strings.ToLower(a.Name), needle)
	})
}
