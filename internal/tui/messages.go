// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/assetdesk/internal/api"
)

// Navigation messages emitted by sub-views and handled by mainModel.
type (
	backToMenuMsg struct{}
	backToListMsg struct{}
	openAddMsg    struct{}
	openEditMsg   struct{ id string }
	loggedInMsg   struct{}
	loggedOutMsg  struct{}
	// sessionEndedMsg is sent when a call found no usable credential.
	sessionEndedMsg struct{}
)

// bannerDuration is how long success banners stay up before navigating.
var bannerDuration = 2 * time.Second

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// unauthenticated returns a command ending the session when err says so.
func unauthenticated(err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthenticated) {
		return emit(sessionEndedMsg{})
	}
	return nil
}
