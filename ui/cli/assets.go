// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/util/slicest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func listStatusRefs(ctx context.Context) ([]model.Ref, error) {
	statuses, err := service.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return slicest.Map(statuses, func(s model.Status) model.Ref { return model.Ref(s) }), nil
}

func listLocationRefs(ctx context.Context) ([]model.Ref, error) {
	locations, err := service.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	return slicest.Map(locations, func(l model.Location) model.Ref { return model.Ref(l) }), nil
}

// refName returns the name for id, or id itself when the lookup misses.
func refName(refs []model.Ref, id string) string {
	if r, ok := slicest.Find(refs, func(r model.Ref) bool { return r.ID == id }); ok {
		return r.Name
	}
	return id
}

// resolveRef accepts either an id or a case-insensitive name. Unknown values
// are passed through so the API can reject them.
func resolveRef(ctx context.Context, value string, list func(context.Context) ([]model.Ref, error)) (string, error) {
	if value == "" {
		return "", nil
	}
	refs, err := list(ctx)
	if err != nil {
		return "", explain(err)
	}
	if _, ok := slicest.Find(refs, func(r model.Ref) bool { return r.ID == value }); ok {
		return value, nil
	}
	if r, ok := slicest.Find(refs, func(r model.Ref) bool { return strings.EqualFold(r.Name, value) }); ok {
		return r.ID, nil
	}
	return value, nil
}

func newAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asset",
		Aliases: []string{"assets"},
		Short:   "List and manage assets",
	}
	cmd.AddCommand(
		newAssetListCmd(),
		newAssetShowCmd(),
		newAssetCreateCmd(),
		newAssetUpdateCmd(),
		newAssetDeleteCmd(),
	)
	return cmd
}

func newAssetListCmd() *cobra.Command {
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the first page of assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			page, err := service.AssetPage(ctx)
			if err != nil {
				return explain(err)
			}
			assets := model.FilterByName(page.Results, search)
			if asJSON {
				return writeJSON(out, assets)
			}
			if len(assets) == 0 {
				fmt.Fprintln(out, i18n.T("cli.asset.none"))
				return nil
			}

			// Names are a convenience; ids are shown when a lookup fails.
			statuses := api.OrEmpty(listStatusRefs(ctx))
			locations := api.OrEmpty(listLocationRefs(ctx))
			rows := make([][]string, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []string{a.ID, a.Name, refName(statuses, a.StatusID), refName(locations, a.LocationID)})
			}
			renderTable(out, []string{"ID", "NAME", "STATUS", "LOCATION"}, rows)
			fmt.Fprintln(out, i18n.T("cli.asset.summary", len(assets), page.Count))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show assets whose name contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newAssetShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one asset with its status and location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := service.GetAsset(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, detail)
			}
			fmt.Fprintf(out, "ID:       %s\n", detail.ID)
			fmt.Fprintf(out, "Name:     %s\n", detail.Name)
			fmt.Fprintf(out, "Status:   %s (%s)\n", detail.Status.Name, detail.Status.ID)
			fmt.Fprintf(out, "Location: %s (%s)\n", detail.Location.Name, detail.Location.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newAssetCreateCmd() *cobra.Command {
	var in model.AssetInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		Long: `Creates an asset. --status and --location accept either an id or a name,
e.g. --status Active --location "Warehouse A".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if in.StatusID, err = resolveRef(ctx, in.StatusID, listStatusRefs); err != nil {
				return err
			}
			if in.LocationID, err = resolveRef(ctx, in.LocationID, listLocationRefs); err != nil {
				return err
			}
			if err := service.CreateAsset(ctx, in); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.asset.created"))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Asset name")
	cmd.Flags().StringVar(&in.StatusID, "status", "", "Status id or name")
	cmd.Flags().StringVar(&in.LocationID, "location", "", "Location id or name")
	return cmd
}

func newAssetUpdateCmd() *cobra.Command {
	var name, status, location string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an asset; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			detail, err := service.GetAsset(ctx, id)
			if err != nil {
				return explain(err)
			}
			in := detail.Input()
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("status") {
				if in.StatusID, err = resolveRef(ctx, status, listStatusRefs); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("location") {
				if in.LocationID, err = resolveRef(ctx, location, listLocationRefs); err != nil {
					return err
				}
			}

			if err := service.UpdateAsset(ctx, id, in); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.asset.updated", id))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&status, "status", "", "New status id or name")
	cmd.Flags().StringVar(&location, "location", "", "New location id or name")
	return cmd
}

func newAssetDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()
			if !yes && !newPrompter(cmd).confirm(i18n.T("cli.asset.delete_confirm", id)) {
				fmt.Fprintln(out, i18n.T("cli.aborted"))
				return nil
			}
			if err := service.DeleteAsset(cmd.Context(), id); err != nil {
				return explain(err)
			}
			fmt.Fprintln(out, i18n.T("cli.asset.deleted", id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newLookupCmd builds the "status" and "location" command groups.
func newLookupCmd(use, short string, list func(context.Context) ([]model.Ref, error)) *cobra.Command {
	var asJSON bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := list(cmd.Context())
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, refs)
			}
			rows := make([][]string, 0, len(refs))
			for _, r := range refs {
				rows = append(rows, []string{r.ID, r.Name})
			}
			renderTable(out, []string{"ID", "NAME"}, rows)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(listCmd)
	return cmd
}
