// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toeirei/assetdesk/internal/config"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/logging"
)

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Dump debug information about config, env, flags and settings",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- ASSETDESK DEBUG ---")

			used := config.UsedFile()
			if used == "" {
				used = "(none, defaults only)"
			}
			fmt.Fprintf(out, "Config file used: %s\n", used)
			if p, err := config.GetConfigPath(false); err == nil {
				fmt.Fprintf(out, "User config path: %s\n", p)
			}

			b, err := yaml.Marshal(appConfig)
			if err != nil {
				logging.Errorf("could not marshal settings: %v", err)
			} else {
				fmt.Fprintln(out, "-- settings --")
				fmt.Fprint(out, string(b))
			}

			fmt.Fprintf(out, "Logged in: %t\n", service != nil && service.Authenticated())
			fmt.Fprintf(out, "Language: %s\n", i18n.GetLang())

			fmt.Fprintln(out, "-- flags --")
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				fmt.Fprintf(out, "%s = %s\n", f.Name, f.Value.String())
			})

			fmt.Fprintln(out, "-- environment (ASSETDESK_*) --")
			for _, e := range os.Environ() {
				if strings.HasPrefix(e, "ASSETDESK_") {
					fmt.Fprintln(out, e)
				}
			}

			fmt.Fprintln(out, "--- END DEBUG ---")
		},
	}
}
