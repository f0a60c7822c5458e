// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/session"
)

func newService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Store("tok-admin", &model.User{Email: "admin@example.com", Role: model.RoleAdmin}))

	return NewService(api.New(srv.URL, 0, store))
}

func TestListUsers(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/users", r.URL.Path)
		assert.Equal(t, "tok-admin", r.Header.Get("X-Auth-Token"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "u1", "email": "a@example.com", "role": "admin"},
			{"id": "u2", "email": "b@example.com", "role": "user"},
		})
	}))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.True(t, users[0].IsAdmin())
	assert.False(t, users[1].IsAdmin())
}

func TestUpdateUserRole(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/admin/users/b@example.com", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["role"])

		json.NewEncoder(w).Encode(map[string]string{"id": "u2", "email": "b@example.com", "role": "admin"})
	}))

	updated, err := svc.UpdateUserRole(context.Background(), "b@example.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}

func TestUpdateUserRoleRejectsUnknownRoleLocally(t *testing.T) {
	called := false
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := svc.UpdateUserRole(context.Background(), "b@example.com", model.Role("owner"))
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.False(t, called)
}

func TestUpdateUserRoleMapsNotFound(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"User not found"}`, http.StatusNotFound)
	}))

	_, err := svc.UpdateUserRole(context.Background(), "ghost@example.com", model.RoleUser)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/admin/users/jo@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "User deleted"})
	}))

	require.NoError(t, svc.DeleteUser(context.Background(), "jo@example.com"))
}

func TestDeleteUserAlreadyGone(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"User not found"}`, http.StatusNotFound)
	}))

	err := svc.DeleteUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
	// Still a not-found at the taxonomy level for callers that care.
	assert.NotErrorIs(t, err, api.ErrUnauthorized)
}

func TestMissingEmailRejected(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := svc.UpdateUserRole(context.Background(), "", model.RoleUser)
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), ""), ErrMissingEmail)
}
