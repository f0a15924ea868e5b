// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Assetdesk.
//
// Usage:
//
//	go run . [flags]
//	./assetdesk [flags]
//
// This launches the Assetdesk CLI. See --help for options.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/assetdesk/ui/cli"
)

// main is the entrypoint for the Assetdesk CLI.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
