// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminsvc "github.com/faithtalk/faithtalk-tui/internal/admin"
	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/session"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

func newModel() *Model {
	m := New(styles.NewTheme(), adminsvc.NewService(nil), "admin@example.com")
	m.SetSize(80, 24)
	m.Update(usersLoadedMsg{users: []model.User{
		{ID: "u1", Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin},
		{ID: "u2", Username: "jo", Email: "jo@example.com", Role: model.RoleUser},
	}})
	return m
}

func TestUsersLoadedPopulatesTable(t *testing.T) {
	m := newModel()
	assert.Len(t, m.table.Rows(), 2)
	assert.False(t, m.busy)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newModel()
	m.table.SetCursor(1)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.True(t, m.confirming)

	// Any key other than y cancels.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Nil(t, cmd)
	assert.False(t, m.confirming)
}

func TestDeleteConfirmedStartsRequest(t *testing.T) {
	m := newModel()
	m.table.SetCursor(1)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
}

func TestSelfDeletionRefusedLocally(t *testing.T) {
	m := newModel()
	m.table.SetCursor(0) // the signed-in admin's own row

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.False(t, m.confirming)
	assert.NotEmpty(t, m.errText)
}

func TestActionsAddressAccountsByEmail(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "u2", "email": "jo@example.com", "role": "admin"})
	}))
	defer srv.Close()

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Store("tok", &model.User{Email: "admin@example.com", Role: model.RoleAdmin}))
	svc := adminsvc.NewService(api.New(srv.URL, 0, store))

	m := New(styles.NewTheme(), svc, "admin@example.com")
	m.SetSize(80, 24)
	m.Update(usersLoadedMsg{users: []model.User{
		{ID: "u1", Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin},
		{ID: "u2", Username: "jo", Email: "jo@example.com", Role: model.RoleUser},
	}})
	m.table.SetCursor(1)

	cmd := m.setRole(model.RoleAdmin)
	require.NotNil(t, cmd)
	cmd()
	m.busy = false

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	msg, ok := cmd().(userDeletedMsg)
	require.True(t, ok)
	assert.Equal(t, "jo@example.com", msg.email)

	// Both calls must address the row by email, never by record ID.
	require.Len(t, requests, 2)
	assert.Equal(t, "PUT /api/admin/users/jo@example.com", requests[0])
	assert.Equal(t, "DELETE /api/admin/users/jo@example.com", requests[1])
}

func TestPromoteSkipsNoopRoleChange(t *testing.T) {
	m := newModel()
	m.table.SetCursor(0) // already an admin

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
}

func TestEscClosesView(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, CloseMsg{}, cmd())
}
