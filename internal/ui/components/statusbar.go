// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom hint line.
type StatusBar struct {
	theme *styles.Theme
	width int
}

// NewStatusBar creates a status bar bound to the theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// SetWidth updates the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the shortcuts, separated by dots.
func (s *StatusBar) View(shortcuts []Shortcut) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts,
			s.theme.StatusKey.Render(sc.Key)+" "+s.theme.StatusDesc.Render(sc.Desc))
	}
	return s.theme.StatusBar.Width(s.width).Render(strings.Join(parts, "  ·  "))
}
