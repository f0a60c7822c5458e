// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

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

func newService(t *testing.T, handler http.Handler) (*Service, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)

	client := api.New(srv.URL, 0, store)
	return NewService(client, store), store
}

func TestLoginPersistsSession(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jo@example.com", req["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]string{"email": "jo@example.com", "username": "jo", "role": "admin"},
		})
	}))

	user, err := svc.Login(context.Background(), "jo@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", user.Email)
	assert.True(t, user.IsAdmin())

	assert.Equal(t, "tok-1", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "jo@example.com", store.User().Email)
}

func TestLoginRejectsBadInputBeforeAnyRequest(t *testing.T) {
	called := false
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := svc.Login(context.Background(), "not-an-email", "secret1")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.False(t, called)
}

func TestLoginMissingTokenIsMalformed(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"email":"jo@example.com"}}`))
	}))

	_, err := svc.Login(context.Background(), "jo@example.com", "secret1")
	assert.ErrorIs(t, err, api.ErrMalformedResponse)
	assert.False(t, store.IsAuthenticated())
}

func TestRegisterSurfacesServerValidationMessage(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"msg":"Email already in use"}]}`))
	}))

	err := svc.Register(context.Background(), "jordan", "jo@example.com", "secret1")
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already in use", apiErr.Message)
}

func TestRegisterShortPasswordFailsPreflight(t *testing.T) {
	called := false
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := svc.Register(context.Background(), "jordan", "jo@example.com", "abc")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
	assert.Equal(t, "must be at least 6 characters", verr.Message)
	assert.False(t, called)
}

func TestLogoutClearsSessionWithoutServerCall(t *testing.T) {
	called := false
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-1",
				"user":  map[string]string{"email": "jo@example.com", "role": "user"},
			})
			return
		}
		called = true
	}))

	_, err := svc.Login(context.Background(), "jo@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	assert.False(t, store.IsAuthenticated())
	assert.False(t, called)
}

func TestCurrentUserRequiresSession(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestCurrentUserRefreshesCachedRecord(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			assert.Equal(t, "jo@example.com", r.URL.Query().Get("email"))
			assert.Equal(t, "tok-1", r.Header.Get("X-Auth-Token"))
			json.NewEncoder(w).Encode(map[string]string{"email": "jo@example.com", "username": "jo", "role": "admin"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	require.NoError(t, store.Store("tok-1", &model.User{Email: "jo@example.com", Role: model.RoleUser}))

	user, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, model.RoleAdmin, store.User().Role)
}

func TestCurrentUserMapsNotFound(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"User not found"}`, http.StatusNotFound)
	}))
	require.NoError(t, store.Store("tok-1", &model.User{Email: "gone@example.com", Role: model.RoleUser}))

	_, err := svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
