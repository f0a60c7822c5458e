// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the FaithTalk TUI.
// All colors use Lip Gloss AdaptiveColor so the same theme reads well on
// light and dark terminals.
package styles
