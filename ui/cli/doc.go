// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Assetdesk using Cobra.
// It loads configuration, opens the session store and builds the API client
// before any command runs. Commands stay thin and delegate to the api,
// chart and export packages; running without a subcommand starts the TUI.
package cli
