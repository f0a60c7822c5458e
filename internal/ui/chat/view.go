// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faithtalk/faithtalk-tui/internal/model"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.Busy() {
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.Thinking.Render(" thinking..."))
	} else {
		b.WriteString(m.input.View())
	}
	return b.String()
}

// refresh re-renders the transcript into the viewport and pins it to the
// bottom so the newest message stays visible.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = m.width
	}

	var lines []string
	for _, msg := range m.transcript.Messages() {
		lines = append(lines, m.renderMessage(msg, bubbleWidth))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg model.ChatMessage, width int) string {
	stamp := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch {
	case msg.IsError:
		bubble := m.theme.ErrorBubble.MaxWidth(width).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
	case msg.Sender == model.SenderUser:
		bubble := m.theme.UserBubble.MaxWidth(width).Render(msg.Text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, bubble, stamp))
	default:
		bubble := m.theme.BotBubble.MaxWidth(width).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
	}
}
