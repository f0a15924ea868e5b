// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/chart"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/internal/request"
)

type aggregateMsg struct {
	kind   model.GroupKind
	ticket request.Ticket
	values []model.AggregateCount
	err    error
}

// dashboardModel is the home view with the two aggregate charts.
type dashboardModel struct {
	ctx        context.Context
	svc        api.Service
	byStatus   request.State[[]model.AggregateCount]
	byLocation request.State[[]model.AggregateCount]
	width      int
}

func newDashboardModel(ctx context.Context, svc api.Service) *dashboardModel {
	return &dashboardModel{ctx: ctx, svc: svc}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

// load fetches both aggregates concurrently.
func (m *dashboardModel) load() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	st := m.byStatus.Begin()
	lt := m.byLocation.Begin()
	return tea.Batch(
		func() tea.Msg {
			v, err := svc.AggregateByStatus(ctx)
			return aggregateMsg{kind: model.GroupStatus, ticket: st, values: v, err: err}
		},
		func() tea.Msg {
			v, err := svc.AggregateByLocation(ctx)
			return aggregateMsg{kind: model.GroupLocation, ticket: lt, values: v, err: err}
		},
	)
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case aggregateMsg:
		target := &m.byStatus
		if msg.kind == model.GroupLocation {
			target = &m.byLocation
		}
		if target.Resolve(msg.ticket, msg.values, msg.err) {
			return m, unauthenticated(msg.err)
		}
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}
	return m, nil
}

func (m *dashboardModel) section(title string, st *request.State[[]model.AggregateCount]) string {
	width := m.width - 8
	if width < 30 {
		width = 60
	}
	if st.Loading() {
		return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), helpStyle.Render(i18n.T("dashboard.loading")))
	}
	body := chart.Bars(title, st.ValueOr(nil), width)
	var errText string
	if st.Err() != nil {
		errText = i18n.T("dashboard.load_failed", st.Err())
	}
	return renderResultBlock(body, errText)
}

func (m *dashboardModel) View() string {
	statuses := m.byStatus.ValueOr(nil)

	items := []string{
		mainTitleStyle.Render(i18n.T("dashboard.title")),
		i18n.T("dashboard.total", model.TotalCount(statuses)),
		"",
		m.section(i18n.T("dashboard.status"), &m.byStatus),
		"",
		m.section(i18n.T("dashboard.location"), &m.byLocation),
		"",
		helpStyle.Render(i18n.T("dashboard.help")),
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
