// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/mockapi"
)

var demoAssets = []struct{ name, status, location string }{
	{"Laptop-01", "s1", "l1"},
	{"Projector-02", "s2", "l2"},
	{"Router-03", "s1", "l3"},
}

func newMockServerCmd() *cobra.Command {
	var addr string
	var seed bool

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory fake of the asset API for demos",
		Long: `Serves the asset API from memory until interrupted. Point assetdesk at it
with --api.base_url http://<addr> and sign in with the printed demo account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fake := mockapi.New()
			if seed {
				for _, a := range demoAssets {
					fake.SeedAsset(a.name, a.status, a.location)
				}
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("could not listen on %s: %w", addr, err)
			}
			srv := &http.Server{Handler: fake, ReadHeaderTimeout: 5 * time.Second}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("cli.mock.listening", ln.Addr().String()))
			fmt.Fprintln(out, i18n.T("cli.mock.credentials", mockapi.DemoEmail, mockapi.DemoPassword))

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			logging.Infof("mock-server: shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().BoolVar(&seed, "seed", true, "Start with a few demo assets")
	return cmd
}
