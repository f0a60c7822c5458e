// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components shared by every view. It detects the
// terminal's color capability once at startup.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// HEADER AND STATUS BAR
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusDesc  lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FormBox      lipgloss.Style
	FormTitle    lipgloss.Style
	FormLabel    lipgloss.Style
	FormHint     lipgloss.Style
	FormError    lipgloss.Style
	FormSuccess  lipgloss.Style
	ButtonActive lipgloss.Style
	Button       lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	Timestamp   lipgloss.Style

	// ==========================================================================
	// ADMIN TABLE
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	AdminBadge    lipgloss.Style
	ConfirmBox    lipgloss.Style

	// ==========================================================================
	// MISC
	// ==========================================================================

	Spinner  lipgloss.Style
	Thinking lipgloss.Style
	Notice   lipgloss.Style
}

// NewTheme creates a theme with all styles configured.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.StatusDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)
	t.FormTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true).
		MarginBottom(1)
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormSuccess = lipgloss.NewStyle().
		Foreground(Emerald)
	t.ButtonActive = lipgloss.NewStyle().
		Background(Indigo).
		Foreground(TextInverse).
		Padding(0, 2).
		Bold(true)
	t.Button = lipgloss.NewStyle().
		Background(Overlay).
		Foreground(TextPrimary).
		Padding(0, 2)

	t.UserBubble = lipgloss.NewStyle().
		Background(UserBubbleBg).
		Foreground(UserBubbleFg).
		Padding(0, 1).
		MarginBottom(1)
	t.BotBubble = lipgloss.NewStyle().
		Background(BotBubbleBg).
		Foreground(BotBubbleFg).
		Padding(0, 1).
		MarginBottom(1)
	t.ErrorBubble = lipgloss.NewStyle().
		Background(ErrorBubbleBg).
		Foreground(ErrorBubbleFg).
		Padding(0, 1).
		MarginBottom(1)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.TableSelected = lipgloss.NewStyle().
		Background(IndigoDeep).
		Foreground(TextInverse)
	t.AdminBadge = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.ConfirmBox = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)
	t.Thinking = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.Notice = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	return t
}

// SetSize records the terminal dimensions for views that size themselves.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
