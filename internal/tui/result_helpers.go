// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"

	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
)

// renderResultBlock stacks an optional primary line and an optional error line.
// Callers pass already-localized text.
func renderResultBlock(primary string, err string) string {
	var parts []string
	if primary != "" {
		parts = append(parts, primary)
	}
	if err != "" {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, errorStyle.Render(err))
	}
	return strings.Join(parts, "\n")
}

// loginErrorText maps a Login failure to the text shown under the form.
func loginErrorText(err error) string {
	if errors.Is(err, api.ErrInvalidCredentials) {
		return i18n.T("login.error.invalid")
	}
	return i18n.T("app.error.generic")
}
