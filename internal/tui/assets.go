// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/internal/request"
	"github.com/toeirei/assetdesk/util/slicest"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type assetPageMsg struct {
	ticket request.Ticket
	page   model.AssetPage
	err    error
}

type statusesMsg struct {
	ticket request.Ticket
	values []model.Status
	err    error
}

type locationsMsg struct {
	ticket request.Ticket
	values []model.Location
	err    error
}

// assetsModel lists the first asset page with lookup names resolved.
type assetsModel struct {
	ctx       context.Context
	svc       api.Service
	page      request.State[model.AssetPage]
	statuses  request.State[[]model.Status]
	locations request.State[[]model.Location]

	displayed   []model.Asset
	cursor      int
	filter      string
	isFiltering bool
	status      string
	width       int
}

func newAssetsModel(ctx context.Context, svc api.Service) *assetsModel {
	return &assetsModel{ctx: ctx, svc: svc}
}

func (m *assetsModel) Init() tea.Cmd {
	return m.load()
}

func (m *assetsModel) load() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	pt := m.page.Begin()
	return tea.Batch(
		func() tea.Msg {
			p, err := svc.AssetPage(ctx)
			return assetPageMsg{ticket: pt, page: p, err: err}
		},
		loadStatuses(ctx, svc, &m.statuses),
		loadLocations(ctx, svc, &m.locations),
	)
}

func loadStatuses(ctx context.Context, svc api.Service, st *request.State[[]model.Status]) tea.Cmd {
	t := st.Begin()
	return func() tea.Msg {
		v, err := svc.ListStatuses(ctx)
		return statusesMsg{ticket: t, values: v, err: err}
	}
}

func loadLocations(ctx context.Context, svc api.Service, st *request.State[[]model.Location]) tea.Cmd {
	t := st.Begin()
	return func() tea.Msg {
		v, err := svc.ListLocations(ctx)
		return locationsMsg{ticket: t, values: v, err: err}
	}
}

// rebuild applies the client-side name filter.
func (m *assetsModel) rebuild() {
	m.displayed = model.FilterByName(m.page.ValueOr(model.AssetPage{}).Results, m.filter)
	if m.cursor >= len(m.displayed) {
		m.cursor = len(m.displayed) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *assetsModel) selected() (model.Asset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.displayed) {
		return model.Asset{}, false
	}
	return m.displayed[m.cursor], true
}

func (m *assetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case assetPageMsg:
		if m.page.Resolve(msg.ticket, msg.page, msg.err) {
			m.rebuild()
			return m, unauthenticated(msg.err)
		}
		return m, nil
	case statusesMsg:
		if m.statuses.Resolve(msg.ticket, msg.values, msg.err) {
			return m, unauthenticated(msg.err)
		}
		return m, nil
	case locationsMsg:
		if m.locations.Resolve(msg.ticket, msg.values, msg.err) {
			return m, unauthenticated(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					r := []rune(m.filter)
					m.filter = string(r[:len(r)-1])
					m.rebuild()
				}
			case tea.KeySpace:
				m.filter += " "
				m.rebuild()
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuild()
			}
			return m, nil
		}

		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.status = ""
		case "esc":
			if m.filter != "" {
				m.filter = ""
				m.rebuild()
				return m, nil
			}
			return m, emit(backToMenuMsg{})
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.displayed)-1 {
				m.cursor++
			}
		case "enter":
			if a, ok := m.selected(); ok {
				return m, emit(openEditMsg{id: a.ID})
			}
		case "n":
			return m, emit(openAddMsg{})
		case "c":
			if a, ok := m.selected(); ok {
				if err := copyToClipboard(a.ID); err != nil {
					m.status = i18n.T("assets.copy_failed", err)
				} else {
					m.status = i18n.T("assets.copied", a.ID)
				}
			}
		case "r":
			m.status = ""
			return m, m.load()
		}
	}
	return m, nil
}

func statusNames(sts []model.Status) map[string]string {
	return slicest.ToMap(sts, func(s model.Status) (string, string) { return s.ID, s.Name })
}

func locationNames(locs []model.Location) map[string]string {
	return slicest.ToMap(locs, func(l model.Location) (string, string) { return l.ID, l.Name })
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}

func (m *assetsModel) View() string {
	items := []string{mainTitleStyle.Render(i18n.T("assets.title"))}

	switch {
	case m.isFiltering:
		items = append(items, i18n.T("assets.search")+m.filter+"▌")
	case m.filter != "":
		items = append(items, helpStyle.Render(i18n.T("assets.filter_active", m.filter)))
	default:
		items = append(items, helpStyle.Render(i18n.T("assets.filter_hint")))
	}
	items = append(items, "")

	switch {
	case m.page.Loading() && len(m.displayed) == 0:
		items = append(items, helpStyle.Render(i18n.T("assets.loading")))
	case m.page.Err() != nil:
		items = append(items, renderResultBlock(helpStyle.Render(i18n.T("assets.empty")), i18n.T("assets.load_failed", m.page.Err())))
	case len(m.displayed) == 0:
		items = append(items, helpStyle.Render(i18n.T("assets.empty")))
	default:
		items = append(items, m.table())
	}

	if m.status != "" {
		items = append(items, "", statusMessageStyle.Render(m.status))
	}

	page := m.page.ValueOr(model.AssetPage{})
	summary := i18n.T("assets.summary", len(page.Results), page.Count, max(page.Page, 1), max(page.PageCount, 1))
	items = append(items, "", AlignFooter(helpStyle.Render(i18n.T("assets.help")), helpStyle.Render(summary), m.width-4))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m *assetsModel) table() string {
	sn := statusNames(m.statuses.ValueOr(nil))
	ln := locationNames(m.locations.ValueOr(nil))

	nameW := lipgloss.Width(i18n.T("assets.column.name"))
	statusW := lipgloss.Width(i18n.T("dashboard.status"))
	for _, a := range m.displayed {
		nameW = max(nameW, lipgloss.Width(a.Name))
		statusW = max(statusW, lipgloss.Width(nameOr(sn, a.StatusID)))
	}

	row := func(name, status, location string) string {
		return fmt.Sprintf("%-*s  %-*s  %s", nameW, name, statusW, status, location)
	}

	lines := []string{headerCellStyle.Render("  " + row(i18n.T("assets.column.name"), i18n.T("dashboard.status"), i18n.T("dashboard.location")))}
	for i, a := range m.displayed {
		line := row(a.Name, nameOr(sn, a.StatusID), nameOr(ln, a.LocationID))
		if i == m.cursor {
			lines = append(lines, selectedItemStyle.Render("▸ "+line))
		} else {
			lines = append(lines, itemStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}
