// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
	"github.com/faithtalk/faithtalk-tui/internal/util"
)

// Header renders the top bar: brand on the left, the signed-in identity on
// the right.
type Header struct {
	theme *styles.Theme
	width int
	user  *model.User
}

// NewHeader creates a header bound to the theme.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// SetWidth updates the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetUser updates the identity shown on the right; nil means signed out.
func (h *Header) SetUser(user *model.User) {
	h.user = user
}

// View renders the header line.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("FaithTalk")

	identity := h.theme.HeaderMeta.Render("signed out")
	if h.user != nil {
		// Long usernames must not push the brand off a narrow terminal.
		label := util.TruncateWidth(h.user.DisplayName(), h.width/2)
		if h.user.IsAdmin() {
			label += " " + h.theme.AdminBadge.Render("[admin]")
		}
		identity = h.theme.HeaderMeta.Render(label)
	}

	gap := h.width - lipgloss.Width(title) - lipgloss.Width(identity) - 2
	if gap < 1 {
		gap = 1
	}
	line := title + lipgloss.NewStyle().Width(gap).Render("") + identity
	return h.theme.Header.Width(h.width).Render(line)
}
