// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the small reusable pieces shared by the
// FaithTalk views: the header bar and the shortcut status bar.
package components
