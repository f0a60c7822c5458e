// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/faithtalk/faithtalk-tui/internal/llm"

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg delivers a completed model reply. The id ties it back to the
// prompt that produced it; replies for prompts the user already cancelled
// arrive with a stale id and are dropped.
type replyMsg struct {
	id     string
	answer *llm.Answer
	err    error
}

// SignOutMsg asks the app to sign out and return to the login view.
type SignOutMsg struct{}

// OpenAdminMsg asks the app to open the user-management view.
type OpenAdminMsg struct{}
