// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view: a scrolling transcript, a
// prompt input line, and a spinner while the model thinks.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/llm"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// Model is the conversation view.
type Model struct {
	theme *styles.Theme
	svc   *llm.Service

	transcript *model.Transcript
	viewport   viewport.Model
	input      textinput.Model
	spin       spinner.Model

	// pendingID identifies the in-flight prompt; "" when idle. A reply whose
	// id does not match is stale and is dropped on arrival.
	pendingID string
	cancel    context.CancelFunc

	isAdmin bool
	width   int
	height  int
	ready   bool
}

// New creates the conversation view seeded with the welcome message.
func New(theme *styles.Theme, svc *llm.Service) *Model {
	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return &Model{
		theme:      theme,
		svc:        svc,
		transcript: model.NewTranscript(),
		input:      input,
		spin:       spin,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetAdmin toggles the admin shortcut hint.
func (m *Model) SetAdmin(isAdmin bool) {
	m.isAdmin = isAdmin
}

// SetSize lays the view out for the given terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Header, status bar, and the input line are drawn around the viewport.
	vpHeight := height - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 4
	m.refresh()
}

// Reset drops the conversation and starts over with the welcome message.
func (m *Model) Reset() {
	m.abortPending()
	m.transcript = model.NewTranscript()
	m.input.SetValue("")
	m.refresh()
}

// Busy reports whether a prompt is in flight.
func (m *Model) Busy() bool {
	return m.pendingID != ""
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.id != m.pendingID {
			// Cancelled or superseded; nothing to show.
			return m, nil
		}
		m.pendingID = ""
		m.cancel = nil
		if msg.err != nil {
			m.transcript.Append(model.NewErrorMessage(friendlyError(msg.err)))
		} else {
			m.transcript.Append(model.NewBotMessage(msg.answer.Text))
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, m.submit()
		case "esc":
			if m.Busy() {
				m.abortPending()
				m.transcript.Append(model.NewErrorMessage("Request cancelled."))
				m.refresh()
			}
			return m, nil
		case "ctrl+l":
			m.Reset()
			return m, nil
		case "ctrl+a":
			if m.isAdmin {
				return m, func() tea.Msg { return OpenAdminMsg{} }
			}
			return m, nil
		case "ctrl+o":
			return m, func() tea.Msg { return SignOutMsg{} }
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit appends the user's prompt to the transcript and starts the model
// call. Blank prompts and double submits are ignored.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.Busy() {
		return nil
	}

	m.transcript.Append(model.NewUserMessage(text))
	m.input.SetValue("")
	m.refresh()

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	m.pendingID = id
	m.cancel = cancel

	svc := m.svc
	ask := func() tea.Msg {
		answer, err := svc.Ask(ctx, text)
		return replyMsg{id: id, answer: answer, err: err}
	}
	return tea.Batch(ask, m.spin.Tick)
}

func (m *Model) abortPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pendingID = ""
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, api.ErrUnavailable):
		return "The model service is unavailable right now. Try again shortly."
	case errors.Is(err, api.ErrTransport):
		return "Could not reach the server."
	case errors.Is(err, api.ErrMalformedResponse):
		return "The server sent a reply this client could not read."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Try again."
}
