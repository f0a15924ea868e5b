// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/i18n"
)

// confirmDialog is a two-button modal. cursor 0 is Cancel, 1 is the action.
type confirmDialog struct {
	title    string
	question string
	okLabel  string
	cursor   int
	busy     bool
	err      string
}

func newConfirmDialog(title, question, okLabel string) confirmDialog {
	return confirmDialog{title: title, question: question, okLabel: okLabel}
}

type confirmResult int

const (
	confirmPending confirmResult = iota
	confirmAccepted
	confirmRejected
)

// Update handles keys while the dialog is open. y/n are shortcuts.
func (d confirmDialog) Update(msg tea.KeyMsg) (confirmDialog, confirmResult) {
	if d.busy {
		return d, confirmPending
	}
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.cursor = 1 - d.cursor
	case "y":
		return d, confirmAccepted
	case "n", "esc":
		return d, confirmRejected
	case "enter":
		if d.cursor == 1 {
			return d, confirmAccepted
		}
		return d, confirmRejected
	}
	return d, confirmPending
}

func (d confirmDialog) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString("\n\n")
	b.WriteString(specialStyle.Render(d.question))
	b.WriteString("\n\n")

	cancel := buttonStyle.Render(i18n.T("dialog.cancel"))
	ok := buttonStyle.Render(d.okLabel)
	if d.cursor == 1 {
		ok = activeButtonStyle.Render(d.okLabel)
	} else {
		cancel = activeButtonStyle.Render(i18n.T("dialog.cancel"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", ok))
	if d.err != "" {
		b.WriteString("\n\n" + errorStyle.Render(d.err))
	}

	box := dialogBoxStyle.Render(b.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// banner renders a success box, e.g. after a submit.
func banner(title, text string, width, height int) string {
	body := successStyle.Render(title) + "\n\n" + text
	box := bannerBoxStyle.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
