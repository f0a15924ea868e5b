// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// This file is the main entry point for the TUI, containing the top-level
// model that acts as a router to all other sub-views.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/request"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	loginView viewState = iota
	dashboardView
	assetsView
	assetFormView
)

func (v viewState) String() string {
	switch v {
	case loginView:
		return "login"
	case dashboardView:
		return "dashboard"
	case assetsView:
		return "assets"
	case assetFormView:
		return "asset-form"
	default:
		return "unknown"
	}
}

type logoutResultMsg struct {
	ticket request.Ticket
	err    error
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the active sub-model.
type mainModel struct {
	ctx   context.Context
	svc   api.Service
	state viewState

	login     *loginModel
	dashboard *dashboardModel
	assets    *assetsModel
	form      *assetFormModel

	confirmingLogout bool
	logoutDialog     confirmDialog
	logout           request.State[struct{}]

	width  int
	height int
}

func newMainModel(ctx context.Context, svc api.Service) *mainModel {
	m := &mainModel{ctx: ctx, svc: svc}
	if svc.Authenticated() {
		m.state = dashboardView
		m.dashboard = newDashboardModel(ctx, svc)
	} else {
		m.state = loginView
		m.login = newLoginModel(ctx, svc)
	}
	return m
}

// Init starts the first view.
func (m *mainModel) Init() tea.Cmd {
	return m.active().Init()
}

func (m *mainModel) active() tea.Model {
	switch m.state {
	case dashboardView:
		return m.dashboard
	case assetsView:
		return m.assets
	case assetFormView:
		return m.form
	default:
		return m.login
	}
}

// switchTo replaces the active view with a fresh model. Every navigation
// re-fetches; nothing is cached between views.
func (m *mainModel) switchTo(state viewState, sub tea.Model) tea.Cmd {
	logging.Debugf("tui: switching to %s", state)
	m.state = state
	m.confirmingLogout = false
	switch v := sub.(type) {
	case *loginModel:
		m.login = v
	case *dashboardModel:
		m.dashboard = v
	case *assetsModel:
		m.assets = v
	case *assetFormModel:
		m.form = v
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	sub.Update(size)
	return sub.Init()
}

func (m *mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmingLogout {
			return m, m.updateLogoutDialog(msg)
		}
		if m.state != loginView {
			switch msg.String() {
			case "ctrl+h":
				return m, m.switchTo(dashboardView, newDashboardModel(m.ctx, m.svc))
			case "ctrl+a":
				return m, m.switchTo(assetsView, newAssetsModel(m.ctx, m.svc))
			case "ctrl+o":
				m.confirmingLogout = true
				m.logoutDialog = newConfirmDialog(i18n.T("logout.title"), i18n.T("logout.confirm"), i18n.T("dialog.ok"))
				return m, nil
			}
		}

	case loggedInMsg:
		return m, m.switchTo(dashboardView, newDashboardModel(m.ctx, m.svc))
	case loggedOutMsg, sessionEndedMsg:
		return m, m.switchTo(loginView, newLoginModel(m.ctx, m.svc))
	case backToMenuMsg:
		return m, m.switchTo(dashboardView, newDashboardModel(m.ctx, m.svc))
	case backToListMsg:
		return m, m.switchTo(assetsView, newAssetsModel(m.ctx, m.svc))
	case openAddMsg:
		return m, m.switchTo(assetFormView, newAssetFormModel(m.ctx, m.svc, ""))
	case openEditMsg:
		return m, m.switchTo(assetFormView, newAssetFormModel(m.ctx, m.svc, msg.id))

	case logoutResultMsg:
		if !m.logout.Resolve(msg.ticket, struct{}{}, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.logoutDialog.busy = false
			m.logoutDialog.err = i18n.T("app.error.generic")
			return m, unauthenticated(msg.err)
		}
		return m, emit(loggedOutMsg{})
	}

	_, cmd := m.active().Update(msg)
	return m, cmd
}

func (m *mainModel) updateLogoutDialog(msg tea.KeyMsg) tea.Cmd {
	var res confirmResult
	m.logoutDialog, res = m.logoutDialog.Update(msg)
	switch res {
	case confirmRejected:
		m.confirmingLogout = false
	case confirmAccepted:
		m.logoutDialog.busy = true
		m.logoutDialog.err = ""
		ctx, svc := m.ctx, m.svc
		t := m.logout.Begin()
		return func() tea.Msg {
			return logoutResultMsg{ticket: t, err: svc.Logout(ctx)}
		}
	}
	return nil
}

func (m *mainModel) View() string {
	if m.confirmingLogout {
		return m.logoutDialog.View(m.width, m.height)
	}

	body := m.active().View()
	if m.state == loginView {
		return body
	}
	footer := AlignFooter(helpStyle.Render(i18n.T("app.title")), helpStyle.Render(i18n.T("app.footer")), m.width)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, svc api.Service) error {
	_, err := tea.NewProgram(newMainModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		logging.Errorf("TUI run error: %v", err)
	}
	return err
}
