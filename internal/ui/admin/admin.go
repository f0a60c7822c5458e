// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin provides the user-management view: a table of accounts with
// role promotion, demotion, and deletion.
package admin

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	adminsvc "github.com/faithtalk/faithtalk-tui/internal/admin"
	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CloseMsg asks the app to return to the chat view.
type CloseMsg struct{}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type userUpdatedMsg struct {
	user *model.User
	err  error
}

type userDeletedMsg struct {
	email       string
	alreadyGone bool
	err         error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the user-management view.
type Model struct {
	theme *styles.Theme
	svc   *adminsvc.Service

	table      table.Model
	users      []model.User
	selfEmail  string
	confirming bool
	busy       bool
	status     string
	errText    string
	width      int
	height     int
}

// New creates the user-management view. selfEmail marks the signed-in
// admin's own row; self-deletion is refused locally.
func New(theme *styles.Theme, svc *adminsvc.Service, selfEmail string) *Model {
	columns := []table.Column{
		{Title: "Username", Width: 20},
		{Title: "Email", Width: 32},
		{Title: "Role", Width: 8},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	st := table.DefaultStyles()
	st.Header = theme.TableHeader
	st.Selected = theme.TableSelected
	tbl.SetStyles(st)

	return &Model{theme: theme, svc: svc, table: tbl, selfEmail: selfEmail}
}

// Init implements tea.Model and loads the user list.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// SetSize lays the view out for the given terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	h := height - 6
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

// Reload refetches the user list.
func (m *Model) Reload() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	m.busy = true
	m.errText = ""
	svc := m.svc
	return func() tea.Msg {
		users, err := svc.ListUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.users = msg.users
		m.rebuildRows()
		return m, nil

	case userUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.status = msg.user.DisplayName() + " is now " + msg.user.Role.String()
		return m, m.load()

	case userDeletedMsg:
		m.busy = false
		m.confirming = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		if msg.alreadyGone {
			m.status = "That account was already deleted"
		} else {
			m.status = "Account deleted"
		}
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			return m, m.deleteSelected()
		default:
			m.confirming = false
			m.status = "Deletion cancelled"
			return m, nil
		}
	}
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	case "r":
		return m, m.load()
	case "p":
		return m, m.setRole(model.RoleAdmin)
	case "u":
		return m, m.setRole(model.RoleUser)
	case "d", "delete":
		if sel := m.selected(); sel != nil {
			if sel.Email == m.selfEmail {
				m.errText = "You cannot delete your own account"
				return m, nil
			}
			m.confirming = true
			m.status = ""
			m.errText = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) selected() *model.User {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.users) {
		return nil
	}
	return &m.users[i]
}

func (m *Model) setRole(role model.Role) tea.Cmd {
	sel := m.selected()
	if sel == nil || sel.Role == role {
		return nil
	}
	m.busy = true
	m.status = ""
	m.errText = ""

	svc := m.svc
	email := sel.Email
	return func() tea.Msg {
		user, err := svc.UpdateUserRole(context.Background(), email, role)
		return userUpdatedMsg{user: user, err: err}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	sel := m.selected()
	if sel == nil {
		m.confirming = false
		return nil
	}
	m.busy = true

	svc := m.svc
	email := sel.Email
	return func() tea.Msg {
		err := svc.DeleteUser(context.Background(), email)
		if errors.Is(err, adminsvc.ErrAlreadyDeleted) {
			return userDeletedMsg{email: email, alreadyGone: true}
		}
		return userDeletedMsg{email: email, err: err}
	}
}

func (m *Model) rebuildRows() {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		rows = append(rows, table.Row{u.Username, u.Email, u.Role.String()})
	}
	m.table.SetRows(rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	var parts []string
	parts = append(parts, m.theme.FormTitle.Render("User management"))
	parts = append(parts, m.table.View())

	switch {
	case m.confirming:
		sel := m.selected()
		name := ""
		if sel != nil {
			name = sel.DisplayName()
		}
		parts = append(parts, m.theme.ConfirmBox.Render(
			"Delete "+name+"? This cannot be undone.\n"+
				m.theme.FormHint.Render("y to confirm · any other key to cancel")))
	case m.busy:
		parts = append(parts, m.theme.Thinking.Render("Working..."))
	case m.errText != "":
		parts = append(parts, m.theme.FormError.Render(m.errText))
	case m.status != "":
		parts = append(parts, m.theme.FormSuccess.Render(m.status))
	default:
		parts = append(parts, m.theme.FormHint.Render(
			"p promote · u demote · d delete · r refresh · Esc back"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, adminsvc.ErrUserNotFound):
		return "That account no longer exists. Refreshing may help."
	case errors.Is(err, api.ErrTransport):
		return "Could not reach the server."
	case errors.Is(err, api.ErrUnavailable):
		return "The server is having trouble. Try again shortly."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "The operation failed. Try again."
}
