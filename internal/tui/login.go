// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/internal/request"
)

const (
	loginEmail = iota
	loginPassword
	loginSubmit
)

type loginResultMsg struct {
	ticket request.Ticket
	err    error
}

type loginModel struct {
	ctx        context.Context
	svc        api.Service
	inputs     []textinput.Model
	focusIndex int
	fieldErrs  map[int]string
	req        request.State[struct{}]
	errText    string
}

func newLoginModel(ctx context.Context, svc api.Service) *loginModel {
	m := &loginModel{ctx: ctx, svc: svc, inputs: make([]textinput.Model, 2), fieldErrs: map[int]string{}}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40
		switch i {
		case loginEmail:
			t.Prompt = i18n.T("login.email")
			t.Placeholder = "name@example.com"
		case loginPassword:
			t.Prompt = i18n.T("login.password")
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	m.inputs[loginEmail].Focus()
	m.inputs[loginEmail].TextStyle = focusedStyle
	return m
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if !m.req.Resolve(msg.ticket, struct{}{}, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.errText = loginErrorText(msg.err)
			return m, nil
		}
		return m, emit(loggedInMsg{})

	case tea.KeyMsg:
		if m.req.Loading() {
			return m, nil
		}
		switch s := msg.String(); s {
		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == loginSubmit {
				return m, m.submit()
			}
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > loginSubmit {
				m.focusIndex = loginEmail
			} else if m.focusIndex < loginEmail {
				m.focusIndex = loginSubmit
			}
			return m, m.applyFocus()
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *loginModel) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focusIndex {
			cmd = m.inputs[i].Focus()
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

func (m *loginModel) submit() tea.Cmd {
	creds := model.Credentials{
		Email:    strings.TrimSpace(m.inputs[loginEmail].Value()),
		Password: m.inputs[loginPassword].Value(),
	}

	m.fieldErrs = map[int]string{}
	m.errText = ""
	if creds.Email == "" {
		m.fieldErrs[loginEmail] = i18n.T("login.error.email_required")
	}
	if creds.Password == "" {
		m.fieldErrs[loginPassword] = i18n.T("login.error.password_required")
	}
	if len(m.fieldErrs) > 0 {
		return nil
	}

	ticket := m.req.Begin()
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return loginResultMsg{ticket: ticket, err: svc.Login(ctx, creds)}
	}
}

func (m *loginModel) View() string {
	items := []string{
		mainTitleStyle.Render(i18n.T("login.title")),
		helpStyle.Render(i18n.T("login.subtitle")),
		"",
	}
	for i := range m.inputs {
		items = append(items, m.inputs[i].View())
		if e, ok := m.fieldErrs[i]; ok {
			items = append(items, errorStyle.Render("  "+e))
		}
	}

	button := formItemStyle.Render(i18n.T("login.submit"))
	if m.focusIndex == loginSubmit {
		button = formSelectedItemStyle.Render(i18n.T("login.submit"))
	}
	items = append(items, "", button)

	if m.req.Loading() {
		items = append(items, "", helpStyle.Render(i18n.T("login.signing_in")))
	}
	if m.errText != "" {
		items = append(items, "", errorStyle.Render(m.errText))
	}
	items = append(items, "", helpStyle.Render(i18n.T("login.help")))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
