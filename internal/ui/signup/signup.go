// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package signup provides the account registration form view.
package signup

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/auth"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SucceededMsg reports a completed registration. The user still signs in
// separately; the app switches back to the login view with a notice.
type SucceededMsg struct {
	Email string
}

// SwitchToLoginMsg asks the app to show the sign-in form instead.
type SwitchToLoginMsg struct{}

type failedMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// Model is the registration form.
type Model struct {
	theme *styles.Theme
	svc   *auth.Service

	inputs  [fieldCount]textinput.Model
	focus   int
	busy    bool
	errText string
	width   int
}

// New creates the registration form.
func New(theme *styles.Theme, svc *auth.Service) *Model {
	m := &Model{theme: theme, svc: svc}

	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "  "
	username.CharLimit = 30
	username.Focus()
	m.inputs[fieldUsername] = username

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "  "
	email.CharLimit = 254
	m.inputs[fieldEmail] = email

	for _, i := range []int{fieldPassword, fieldConfirm} {
		pw := textinput.New()
		pw.Placeholder = "password"
		pw.Prompt = "  "
		pw.EchoMode = textinput.EchoPassword
		pw.EchoCharacter = '•'
		m.inputs[i] = pw
	}
	m.inputs[fieldConfirm].Placeholder = "confirm password"

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetWidth updates the render width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Reset clears the form for a fresh visit.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = fieldUsername
	m.inputs[fieldUsername].Focus()
	m.busy = false
	m.errText = ""
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case failedMsg:
		m.busy = false
		m.errText = friendlyError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
			return m, nil
		case "enter":
			if m.focus == fieldConfirm {
				return m, m.submit()
			}
			m.cycleFocus(false)
			return m, nil
		case "esc", "ctrl+s":
			return m, func() tea.Msg { return SwitchToLoginMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) cycleFocus(backwards bool) {
	m.inputs[m.focus].Blur()
	if backwards {
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
	} else {
		m.focus = (m.focus + 1) % fieldCount
	}
	m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	username := m.inputs[fieldUsername].Value()
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()

	// The confirm field never leaves the machine; mismatch is purely local.
	if password != m.inputs[fieldConfirm].Value() {
		m.errText = "Passwords do not match"
		return nil
	}

	m.busy = true
	m.errText = ""

	svc := m.svc
	return func() tea.Msg {
		if err := svc.Register(context.Background(), username, email, password); err != nil {
			return failedMsg{err: err}
		}
		return SucceededMsg{Email: email}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	labels := [fieldCount]string{"Username", "Email", "Password", "Confirm password"}

	var b []string
	b = append(b, m.theme.FormTitle.Render("Create your FaithTalk account"))
	for i := range m.inputs {
		b = append(b, m.theme.FormLabel.Render(labels[i]))
		b = append(b, m.inputs[i].View())
	}

	switch {
	case m.busy:
		b = append(b, m.theme.Thinking.Render("Creating account..."))
	case m.errText != "":
		b = append(b, m.theme.FormError.Render(m.errText))
	default:
		b = append(b, m.theme.FormHint.Render("Enter to register · Esc to go back"))
	}

	form := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, form)
	}
	return form
}

func friendlyError(err error) string {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Field + " " + verr.Message
	case errors.Is(err, api.ErrTransport):
		return "Could not reach the server. Is it running?"
	case errors.Is(err, api.ErrUnavailable):
		return "The server is having trouble. Try again shortly."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Registration failed. Try again."
}
