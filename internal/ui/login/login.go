// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in form view.
package login

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/auth"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SucceededMsg reports a completed sign-in. The session is already
// persisted when this message arrives.
type SucceededMsg struct {
	User *model.User
}

// SwitchToSignupMsg asks the app to show the registration form instead.
type SwitchToSignupMsg struct{}

// failedMsg carries a sign-in failure back into the view.
type failedMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Model is the sign-in form.
type Model struct {
	theme *styles.Theme
	svc   *auth.Service

	inputs  [fieldCount]textinput.Model
	focus   int
	busy    bool
	errText string
	width   int
}

// New creates the sign-in form.
func New(theme *styles.Theme, svc *auth.Service) *Model {
	m := &Model{theme: theme, svc: svc}

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "  "
	email.CharLimit = 254
	email.Focus()
	m.inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	m.inputs[fieldPassword] = password

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
	m.focus = fieldEmail
	m.inputs[fieldEmail].Focus()
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
			if m.focus == fieldPassword {
				return m, m.submit()
			}
			m.cycleFocus(false)
			return m, nil
		case "ctrl+s":
			return m, func() tea.Msg { return SwitchToSignupMsg{} }
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

// submit kicks off the sign-in request off the UI goroutine.
func (m *Model) submit() tea.Cmd {
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	m.busy = true
	m.errText = ""

	svc := m.svc
	return func() tea.Msg {
		user, err := svc.Login(context.Background(), email, password)
		if err != nil {
			return failedMsg{err: err}
		}
		return SucceededMsg{User: user}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b []string
	b = append(b, m.theme.FormTitle.Render("Sign in to FaithTalk"))
	b = append(b, m.theme.FormLabel.Render("Email"))
	b = append(b, m.inputs[fieldEmail].View())
	b = append(b, m.theme.FormLabel.Render("Password"))
	b = append(b, m.inputs[fieldPassword].View())

	switch {
	case m.busy:
		b = append(b, m.theme.Thinking.Render("Signing in..."))
	case m.errText != "":
		b = append(b, m.theme.FormError.Render(m.errText))
	default:
		b = append(b, m.theme.FormHint.Render("Enter to sign in · Ctrl+S to create an account"))
	}

	form := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, form)
	}
	return form
}

// friendlyError maps transport failures onto the words a person at the
// keyboard should see.
func friendlyError(err error) string {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Field + " " + verr.Message
	case errors.Is(err, api.ErrUnauthorized):
		return "Invalid email or password"
	case errors.Is(err, api.ErrTransport):
		return "Could not reach the server. Is it running?"
	case errors.Is(err, api.ErrUnavailable):
		return "The server is having trouble. Try again shortly."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Sign-in failed. Try again."
}
