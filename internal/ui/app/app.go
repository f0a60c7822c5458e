// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the root Bubble Tea model: it routes between the
// login, signup, chat, and admin views and reacts to session events.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	adminsvc "github.com/faithtalk/faithtalk-tui/internal/admin"
	"github.com/faithtalk/faithtalk-tui/internal/auth"
	"github.com/faithtalk/faithtalk-tui/internal/llm"
	"github.com/faithtalk/faithtalk-tui/internal/session"
	adminview "github.com/faithtalk/faithtalk-tui/internal/ui/admin"
	"github.com/faithtalk/faithtalk-tui/internal/ui/chat"
	"github.com/faithtalk/faithtalk-tui/internal/ui/components"
	"github.com/faithtalk/faithtalk-tui/internal/ui/login"
	"github.com/faithtalk/faithtalk-tui/internal/ui/signup"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// view identifies the active screen.
type view int

const (
	viewLogin view = iota
	viewSignup
	viewChat
	viewAdmin
)

// sessionEventMsg wraps a session store event for the Bubble Tea loop.
type sessionEventMsg struct {
	event session.Event
	ok    bool
}

// Model is the application root.
type Model struct {
	theme    *styles.Theme
	sessions *session.Store
	authSvc  *auth.Service
	adminSvc *adminsvc.Service
	llmSvc   *llm.Service

	header *components.Header
	status *components.StatusBar

	login  *login.Model
	signup *signup.Model
	chat   *chat.Model
	admin  *adminview.Model

	active view
	notice string
	events <-chan session.Event
	width  int
	height int
}

// New wires the root model. A persisted session skips straight to chat.
func New(theme *styles.Theme, sessions *session.Store, authSvc *auth.Service, adminSvc *adminsvc.Service, llmSvc *llm.Service) *Model {
	m := &Model{
		theme:    theme,
		sessions: sessions,
		authSvc:  authSvc,
		adminSvc: adminSvc,
		llmSvc:   llmSvc,
		header:   components.NewHeader(theme),
		status:   components.NewStatusBar(theme),
		login:    login.New(theme, authSvc),
		signup:   signup.New(theme, authSvc),
		chat:     chat.New(theme, llmSvc),
		events:   sessions.Subscribe(),
	}

	if user := sessions.User(); sessions.IsAuthenticated() && user != nil {
		m.active = viewChat
		m.header.SetUser(user)
		m.chat.SetAdmin(user.IsAdmin())
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.login.Init(), m.chat.Init(), m.waitForEvent())
}

// waitForEvent blocks on the session event channel off the UI goroutine and
// re-arms itself after each delivery.
func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		return sessionEventMsg{event: ev, ok: ok}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		m.login.SetWidth(msg.Width)
		m.signup.SetWidth(msg.Width)
		m.chat.SetSize(msg.Width, msg.Height-2)
		if m.admin != nil {
			m.admin.SetSize(msg.Width, msg.Height-2)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case sessionEventMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.event.Kind == session.Invalidated {
			// The server rejected the token mid-use. Land on login with an
			// explanation instead of failing silently.
			m.signOutLocally("Your session expired. Please sign in again.")
		}
		return m, m.waitForEvent()

	case login.SucceededMsg:
		m.active = viewChat
		m.notice = ""
		m.header.SetUser(msg.User)
		m.chat.SetAdmin(msg.User.IsAdmin())
		m.chat.Reset()
		return m, nil

	case login.SwitchToSignupMsg:
		m.active = viewSignup
		m.signup.Reset()
		return m, m.signup.Init()

	case signup.SucceededMsg:
		m.active = viewLogin
		m.login.Reset()
		m.notice = "Account created. Sign in to continue."
		return m, nil

	case signup.SwitchToLoginMsg:
		m.active = viewLogin
		m.login.Reset()
		return m, nil

	case chat.SignOutMsg:
		if err := m.authSvc.Logout(); err != nil {
			return m, nil
		}
		m.signOutLocally("")
		return m, nil

	case chat.OpenAdminMsg:
		user := m.sessions.User()
		if user == nil || !user.IsAdmin() {
			return m, nil
		}
		m.admin = adminview.New(m.theme, m.adminSvc, user.Email)
		m.admin.SetSize(m.width, m.height-2)
		m.active = viewAdmin
		return m, m.admin.Init()

	case adminview.CloseMsg:
		m.active = viewChat
		return m, nil
	}

	return m.routeToActive(msg)
}

// routeToActive forwards a message to whichever view is on screen.
func (m *Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case viewLogin:
		m.login, cmd = m.login.Update(msg)
	case viewSignup:
		m.signup, cmd = m.signup.Update(msg)
	case viewChat:
		m.chat, cmd = m.chat.Update(msg)
	case viewAdmin:
		if m.admin != nil {
			m.admin, cmd = m.admin.Update(msg)
		}
	}
	return m, cmd
}

// signOutLocally resets navigation to the login view. The session store is
// already clear by the time this runs.
func (m *Model) signOutLocally(notice string) {
	m.active = viewLogin
	m.header.SetUser(nil)
	m.login.Reset()
	m.chat.Reset()
	m.admin = nil
	m.notice = notice
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.active {
	case viewLogin:
		body = m.login.View()
	case viewSignup:
		body = m.signup.View()
	case viewChat:
		body = m.chat.View()
	case viewAdmin:
		if m.admin != nil {
			body = m.admin.View()
		}
	}

	if m.notice != "" && (m.active == viewLogin || m.active == viewSignup) {
		body = m.theme.Notice.Render(m.notice) + "\n" + body
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.status.View(m.shortcuts()),
	)
}

func (m *Model) shortcuts() []components.Shortcut {
	switch m.active {
	case viewChat:
		s := []components.Shortcut{
			{Key: "Enter", Desc: "send"},
			{Key: "Esc", Desc: "cancel"},
			{Key: "C-l", Desc: "clear"},
			{Key: "C-o", Desc: "sign out"},
		}
		if user := m.sessions.User(); user.IsAdmin() {
			s = append(s, components.Shortcut{Key: "C-a", Desc: "admin"})
		}
		return append(s, components.Shortcut{Key: "C-c", Desc: "quit"})
	case viewAdmin:
		return []components.Shortcut{
			{Key: "p", Desc: "promote"},
			{Key: "u", Desc: "demote"},
			{Key: "d", Desc: "delete"},
			{Key: "Esc", Desc: "back"},
		}
	default:
		return []components.Shortcut{
			{Key: "Tab", Desc: "next field"},
			{Key: "Enter", Desc: "submit"},
			{Key: "C-c", Desc: "quit"},
		}
	}
}
