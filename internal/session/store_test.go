// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithtalk/faithtalk-tui/internal/model"
)

func newUser() *model.User {
	return &model.User{Username: "jo", Email: "jo@example.com", Role: model.RoleUser}
}

func TestIsAuthenticatedTracksTokenPresence(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Store("t1", newUser()))
	assert.True(t, s.IsAuthenticated())

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Store("t1", newUser()))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "t1", reopened.Token())
	require.NotNil(t, reopened.User())
	assert.Equal(t, "jo@example.com", reopened.User().Email)
}

func TestMalformedFileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0600))

	s, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestUserReturnsCopy(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Store("t1", newUser()))

	u := s.User()
	u.Email = "tampered@example.com"
	assert.Equal(t, "jo@example.com", s.User().Email)
}

func TestSessionFilePermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Store("t1", newUser()))

	info, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEventsPublishedOnStateChanges(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	events := s.Subscribe()

	require.NoError(t, s.Store("t1", newUser()))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Invalidate())

	ev := <-events
	assert.Equal(t, SignedIn, ev.Kind)
	assert.Equal(t, "jo@example.com", ev.Email)

	ev = <-events
	assert.Equal(t, SignedOut, ev.Kind)

	ev = <-events
	assert.Equal(t, Invalidated, ev.Kind)
}

func TestClearIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}
