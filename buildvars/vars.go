// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version is set at link time via `-ldflags -X github.com/toeirei/assetdesk/buildvars.Version=...`.
// It is empty for local builds.
var Version string

// Commit and Date are optional link-time values; the CLI falls back to VCS build info.
var (
	Commit string
	Date   string
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}
