// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithtalk/faithtalk-tui/internal/llm"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

func newModel() *Model {
	m := New(styles.NewTheme(), nil)
	m.SetSize(80, 24)
	return m
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTranscriptStartsWithWelcome(t *testing.T) {
	m := newModel()
	require.Equal(t, 1, m.transcript.Len())
	assert.Equal(t, model.WelcomeText, m.transcript.Messages()[0].Text)
	assert.Equal(t, model.SenderBot, m.transcript.Messages()[0].Sender)
}

func TestSubmitAppendsPromptAndClearsInput(t *testing.T) {
	m := newModel()
	typeString(m, "Hello")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Empty(t, m.input.Value())

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, "Hello", last.Text)
	assert.Equal(t, model.SenderUser, last.Sender)
}

func TestBlankPromptIgnored(t *testing.T) {
	m := newModel()
	typeString(m, "   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Equal(t, 1, m.transcript.Len())
}

func TestReplyAppendsBotMessage(t *testing.T) {
	m := newModel()
	typeString(m, "Hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(replyMsg{id: m.pendingID, answer: &llm.Answer{Text: "Hi there"}})

	assert.False(t, m.Busy())
	last := m.transcript.Last()
	assert.Equal(t, "Hi there", last.Text)
	assert.Equal(t, model.SenderBot, last.Sender)
	assert.False(t, last.IsError)
}

func TestStaleReplyDropped(t *testing.T) {
	m := newModel()
	typeString(m, "Hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	before := m.transcript.Len()

	m.Update(replyMsg{id: "some-old-id", answer: &llm.Answer{Text: "late"}})

	assert.Equal(t, before, m.transcript.Len())
	assert.True(t, m.Busy(), "a stale reply must not settle the pending prompt")
}

func TestEscCancelsPendingPrompt(t *testing.T) {
	m := newModel()
	typeString(m, "Hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pending := m.pendingID

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Busy())
	last := m.transcript.Last()
	assert.True(t, last.IsError)

	// The reply for the cancelled prompt arrives later and must be dropped.
	before := m.transcript.Len()
	m.Update(replyMsg{id: pending, answer: &llm.Answer{Text: "too late"}})
	assert.Equal(t, before, m.transcript.Len())
}

func TestResetReturnsToWelcome(t *testing.T) {
	m := newModel()
	typeString(m, "Hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Reset()

	assert.False(t, m.Busy())
	require.Equal(t, 1, m.transcript.Len())
	assert.Equal(t, model.WelcomeText, m.transcript.Messages()[0].Text)
}

func TestAdminShortcutGated(t *testing.T) {
	m := newModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Nil(t, cmd, "non-admins must not reach the admin view")

	m.SetAdmin(true)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	require.NotNil(t, cmd)
	assert.IsType(t, OpenAdminMsg{}, cmd())
}
