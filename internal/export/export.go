// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export writes point-in-time snapshots of the API's data as
// zstd-compressed JSON.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/model"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatVersion is bumped whenever Snapshot changes incompatibly.
const FormatVersion = 1

// Snapshot is the document an export file holds.
type Snapshot struct {
	Version    int                    `json:"version"`
	CreatedAt  time.Time              `json:"created_at"`
	Assets     []model.Asset          `json:"assets"`
	Statuses   []model.Status         `json:"statuses"`
	Locations  []model.Location       `json:"locations"`
	ByStatus   []model.AggregateCount `json:"by_status"`
	ByLocation []model.AggregateCount `json:"by_location"`
}

// Collect fetches everything a snapshot holds. The five reads run
// concurrently and the first failure cancels the rest.
func Collect(ctx context.Context, svc api.Service) (Snapshot, error) {
	snap := Snapshot{Version: FormatVersion, CreatedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Assets, err = svc.ListAssets(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Statuses, err = svc.ListStatuses(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Locations, err = svc.ListLocations(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.ByStatus, err = svc.AggregateByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.ByLocation, err = svc.AggregateByLocation(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("collecting snapshot: %w", err)
	}
	return snap, nil
}

// Encode writes snap to w as zstd-compressed JSON.
func Encode(w io.Writer, snap Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// Write collects a snapshot through svc and encodes it to w.
func Write(ctx context.Context, w io.Writer, svc api.Service) (Snapshot, error) {
	snap, err := Collect(ctx, svc)
	if err != nil {
		return Snapshot{}, err
	}
	if err := Encode(w, snap); err != nil {
		return Snapshot{}, err
	}
	logging.Infof("export: wrote %d assets, %d statuses, %d locations", len(snap.Assets), len(snap.Statuses), len(snap.Locations))
	return snap, nil
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	var snap Snapshot
	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != FormatVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, FormatVersion)
	}
	return snap, nil
}
