// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/internal/request"
)

const (
	fieldName = iota
	fieldStatus
	fieldLocation
	fieldSubmit
)

type assetDetailMsg struct {
	ticket request.Ticket
	detail model.AssetDetail
	err    error
}

type submitResultMsg struct {
	ticket request.Ticket
	err    error
}

type deleteResultMsg struct {
	ticket request.Ticket
	err    error
}

type bannerDoneMsg struct {
	ticket request.Ticket
}

// assetFormModel adds a new asset, or edits/deletes an existing one when id is set.
type assetFormModel struct {
	ctx context.Context
	svc api.Service
	id  string

	name        textinput.Model
	statuses    request.State[[]model.Status]
	locations   request.State[[]model.Location]
	detail      request.State[model.AssetDetail]
	statusIdx   int
	locationIdx int
	prefilled   bool

	focusIndex int
	fieldErrs  map[int]string
	errText    string

	submit     request.State[struct{}]
	remove     request.State[struct{}]
	confirming bool
	confirm    confirmDialog

	bannerText   string
	bannerTicket request.Ticket

	width, height int
}

func newAssetFormModel(ctx context.Context, svc api.Service, id string) *assetFormModel {
	t := textinput.New()
	t.Prompt = i18n.T("form.name")
	t.Placeholder = i18n.T("form.name_placeholder")
	t.Cursor.Style = focusedStyle
	t.CharLimit = 128
	t.Width = 40
	t.Focus()
	t.TextStyle = focusedStyle

	return &assetFormModel{
		ctx:         ctx,
		svc:         svc,
		id:          id,
		name:        t,
		statusIdx:   -1,
		locationIdx: -1,
		fieldErrs:   map[int]string{},
	}
}

func (m *assetFormModel) editing() bool { return m.id != "" }

func (m *assetFormModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		loadStatuses(m.ctx, m.svc, &m.statuses),
		loadLocations(m.ctx, m.svc, &m.locations),
	}
	if m.editing() {
		ctx, svc, id := m.ctx, m.svc, m.id
		t := m.detail.Begin()
		cmds = append(cmds, func() tea.Msg {
			d, err := svc.GetAsset(ctx, id)
			return assetDetailMsg{ticket: t, detail: d, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// prefill copies the loaded detail into the fields once lookups are known.
func (m *assetFormModel) prefill() {
	if m.prefilled || !m.editing() {
		return
	}
	d, ok := m.detail.Value()
	if !ok {
		return
	}
	sts, sok := m.statuses.Value()
	locs, lok := m.locations.Value()
	if !sok || !lok {
		return
	}
	m.name.SetValue(d.Name)
	for i, s := range sts {
		if s.ID == d.Status.ID {
			m.statusIdx = i
		}
	}
	for i, l := range locs {
		if l.ID == d.Location.ID {
			m.locationIdx = i
		}
	}
	m.prefilled = true
}

func (m *assetFormModel) busy() bool {
	return m.submit.Loading() || m.remove.Loading() || m.bannerText != ""
}

func (m *assetFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case statusesMsg:
		if m.statuses.Resolve(msg.ticket, msg.values, msg.err) {
			m.lookupFailed(msg.err)
			m.prefill()
			return m, unauthenticated(msg.err)
		}
		return m, nil
	case locationsMsg:
		if m.locations.Resolve(msg.ticket, msg.values, msg.err) {
			m.lookupFailed(msg.err)
			m.prefill()
			return m, unauthenticated(msg.err)
		}
		return m, nil
	case assetDetailMsg:
		if m.detail.Resolve(msg.ticket, msg.detail, msg.err) {
			m.lookupFailed(msg.err)
			m.prefill()
			return m, unauthenticated(msg.err)
		}
		return m, nil

	case submitResultMsg:
		if !m.submit.Resolve(msg.ticket, struct{}{}, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			if m.editing() {
				m.errText = i18n.T("form.error.update_failed")
			} else {
				m.errText = i18n.T("form.error.add_failed")
			}
			return m, unauthenticated(msg.err)
		}
		if m.editing() {
			return m, m.showBanner(i18n.T("form.success.updated"), msg.ticket)
		}
		return m, m.showBanner(i18n.T("form.success.added"), msg.ticket)

	case deleteResultMsg:
		if !m.remove.Resolve(msg.ticket, struct{}{}, msg.err) {
			return m, nil
		}
		m.confirming = false
		if msg.err != nil {
			m.errText = i18n.T("form.error.delete_failed")
			return m, unauthenticated(msg.err)
		}
		return m, m.showBanner(i18n.T("form.success.deleted"), msg.ticket)

	case bannerDoneMsg:
		if msg.ticket == m.bannerTicket && m.bannerText != "" {
			return m, emit(backToListMsg{})
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m, m.updateConfirm(msg)
		}
		if m.busy() {
			return m, nil
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *assetFormModel) lookupFailed(err error) {
	if err != nil && m.errText == "" {
		m.errText = i18n.T("form.error.lookup_failed", err)
	}
}

func (m *assetFormModel) showBanner(text string, t request.Ticket) tea.Cmd {
	m.bannerText = text
	m.bannerTicket = t
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg { return bannerDoneMsg{ticket: t} })
}

func (m *assetFormModel) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	var res confirmResult
	m.confirm, res = m.confirm.Update(msg)
	switch res {
	case confirmRejected:
		m.confirming = false
	case confirmAccepted:
		m.confirm.busy = true
		ctx, svc, id := m.ctx, m.svc, m.id
		t := m.remove.Begin()
		return func() tea.Msg {
			return deleteResultMsg{ticket: t, err: svc.DeleteAsset(ctx, id)}
		}
	}
	return nil
}

func (m *assetFormModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "esc":
		return m, emit(backToListMsg{})
	case "ctrl+d":
		if m.editing() {
			m.confirming = true
			m.confirm = newConfirmDialog(i18n.T("form.delete_title"), i18n.T("form.delete_confirm"), i18n.T("dialog.delete"))
		}
		return m, nil
	case "left", "right":
		if m.focusIndex == fieldStatus {
			m.statusIdx = cycle(m.statusIdx, len(m.statuses.ValueOr(nil)), s == "right")
			delete(m.fieldErrs, fieldStatus)
			return m, nil
		}
		if m.focusIndex == fieldLocation {
			m.locationIdx = cycle(m.locationIdx, len(m.locations.ValueOr(nil)), s == "right")
			delete(m.fieldErrs, fieldLocation)
			return m, nil
		}
	case "tab", "shift+tab", "enter", "up", "down":
		if s == "enter" && m.focusIndex == fieldSubmit {
			return m, m.save()
		}
		if s == "up" || s == "shift+tab" {
			m.focusIndex--
		} else {
			m.focusIndex++
		}
		if m.focusIndex > fieldSubmit {
			m.focusIndex = fieldName
		} else if m.focusIndex < fieldName {
			m.focusIndex = fieldSubmit
		}
		if m.focusIndex == fieldName {
			m.name.TextStyle = focusedStyle
			return m, m.name.Focus()
		}
		m.name.Blur()
		m.name.TextStyle = lipgloss.NewStyle()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if m.name.Value() != "" {
		delete(m.fieldErrs, fieldName)
	}
	return m, cmd
}

// cycle moves idx through [0,n). An unset idx (-1) starts at either end.
func cycle(idx, n int, forward bool) int {
	if n == 0 {
		return -1
	}
	if idx < 0 {
		if forward {
			return 0
		}
		return n - 1
	}
	if forward {
		return (idx + 1) % n
	}
	return (idx - 1 + n) % n
}

// input validates the fields and returns the request body.
func (m *assetFormModel) input() (model.AssetInput, bool) {
	m.fieldErrs = map[int]string{}
	in := model.AssetInput{Name: strings.TrimSpace(m.name.Value())}

	if in.Name == "" {
		m.fieldErrs[fieldName] = i18n.T("form.error.name_required")
	}
	if sts := m.statuses.ValueOr(nil); m.statusIdx >= 0 && m.statusIdx < len(sts) {
		in.StatusID = sts[m.statusIdx].ID
	} else {
		m.fieldErrs[fieldStatus] = i18n.T("form.error.status_required")
	}
	if locs := m.locations.ValueOr(nil); m.locationIdx >= 0 && m.locationIdx < len(locs) {
		in.LocationID = locs[m.locationIdx].ID
	} else {
		m.fieldErrs[fieldLocation] = i18n.T("form.error.location_required")
	}
	return in, len(m.fieldErrs) == 0
}

func (m *assetFormModel) save() tea.Cmd {
	m.errText = ""
	in, ok := m.input()
	if !ok {
		return nil
	}
	ctx, svc, id := m.ctx, m.svc, m.id
	t := m.submit.Begin()
	return func() tea.Msg {
		var err error
		if id != "" {
			err = svc.UpdateAsset(ctx, id, in)
		} else {
			err = svc.CreateAsset(ctx, in)
		}
		return submitResultMsg{ticket: t, err: err}
	}
}

func (m *assetFormModel) selector(label, placeholder string, idx int, names []string, focused bool) string {
	value := helpStyle.Render(placeholder)
	if idx >= 0 && idx < len(names) {
		value = names[idx]
	}
	line := fmt.Sprintf("%s‹ %s ›", label, value)
	if focused {
		return formSelectedItemStyle.Render(line)
	}
	return formItemStyle.Render(line)
}

func (m *assetFormModel) View() string {
	if m.bannerText != "" {
		return banner(i18n.T("form.success.title"), m.bannerText, m.width, m.height)
	}
	if m.confirming {
		return m.confirm.View(m.width, m.height)
	}

	title := i18n.T("form.add_title")
	if m.editing() {
		title = i18n.T("form.edit_title")
	}
	items := []string{mainTitleStyle.Render(title), helpStyle.Render(i18n.T("form.subtitle")), ""}

	loading := m.statuses.Loading() || m.locations.Loading() || m.detail.Loading()
	if loading {
		items = append(items, helpStyle.Render(i18n.T("form.loading")), "")
	}

	items = append(items, m.name.View())
	if e, ok := m.fieldErrs[fieldName]; ok {
		items = append(items, errorStyle.Render("  "+e))
	}

	var stNames []string
	for _, s := range m.statuses.ValueOr(nil) {
		stNames = append(stNames, s.Name)
	}
	items = append(items, m.selector(i18n.T("form.status"), i18n.T("form.select_status"), m.statusIdx, stNames, m.focusIndex == fieldStatus))
	if e, ok := m.fieldErrs[fieldStatus]; ok {
		items = append(items, errorStyle.Render("  "+e))
	}

	var locNames []string
	for _, l := range m.locations.ValueOr(nil) {
		locNames = append(locNames, l.Name)
	}
	items = append(items, m.selector(i18n.T("form.location"), i18n.T("form.select_location"), m.locationIdx, locNames, m.focusIndex == fieldLocation))
	if e, ok := m.fieldErrs[fieldLocation]; ok {
		items = append(items, errorStyle.Render("  "+e))
	}

	button := formItemStyle.Render(i18n.T("form.submit"))
	if m.focusIndex == fieldSubmit {
		button = formSelectedItemStyle.Render(i18n.T("form.submit"))
	}
	items = append(items, "", button)

	if m.submit.Loading() {
		items = append(items, "", helpStyle.Render(i18n.T("form.submitting")))
	}
	if m.errText != "" {
		items = append(items, "", errorStyle.Render(m.errText))
	}

	help := i18n.T("form.help")
	if m.editing() {
		help = i18n.T("form.help_edit")
	}
	items = append(items, "", helpStyle.Render(help))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
