// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/internal/chart"
	"github.com/toeirei/assetdesk/internal/export"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/model"
)

type grouping struct {
	name  string
	title string
	load  func(context.Context) ([]model.AggregateCount, error)
}

func groupings(by string) ([]grouping, error) {
	byStatus := grouping{"status", i18n.T("cli.stats.by_status"), service.AggregateByStatus}
	byLocation := grouping{"location", i18n.T("cli.stats.by_location"), service.AggregateByLocation}
	switch by {
	case "", "all":
		return []grouping{byStatus, byLocation}, nil
	case "status":
		return []grouping{byStatus}, nil
	case "location":
		return []grouping{byLocation}, nil
	}
	return nil, fmt.Errorf("unknown grouping '%s' (want status, location or all)", by)
}

func newStatsCmd() *cobra.Command {
	var by string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show asset counts per status and per location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := groupings(by)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			results := make(map[string][]model.AggregateCount, len(groups))
			for _, g := range groups {
				aggs, err := g.load(ctx)
				if err != nil {
					return explain(err)
				}
				results[g.name] = aggs
			}
			if asJSON {
				return writeJSON(out, results)
			}

			width := terminalWidth(out)
			for _, g := range groups {
				fmt.Fprintln(out, chart.Bars(g.title, results[g.name], width))
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, i18n.T("dashboard.total", model.TotalCount(results[groups[0].name])))
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "all", "Grouping: status, location or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw counts as JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a compressed snapshot of assets, lookups and aggregates",
		Long: `Fetches assets, statuses, locations and both aggregates and writes them as
one zstd-compressed JSON document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := writeExport(cmd.Context(), outPath)
			if err != nil {
				return explain(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.export.done", len(snap.Assets), outPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (e.g. assets.json.zst)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// writeExport encodes into a temp file next to outPath and renames it into
// place, so a failed run leaves an existing file at outPath untouched.
func writeExport(ctx context.Context, outPath string) (export.Snapshot, error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("could not create %s: %w", outPath, err)
	}
	tmpPath := tmp.Name()

	snap, err := export.Write(ctx, tmp, service)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpPath, outPath)
	}
	if err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warnf("could not remove partial export %s: %v", tmpPath, rmErr)
		}
		return export.Snapshot{}, err
	}
	return snap, nil
}
