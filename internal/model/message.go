// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "FaithTalk"
	default:
		return string(s)
	}
}

// =============================================================================
// CHAT MESSAGE
// =============================================================================

// ChatMessage is a single entry in the chat transcript.
//
// Messages live only in memory for the duration of the program; they are
// never persisted.
type ChatMessage struct {
	ID        string
	Text      string
	Sender    Sender
	IsError   bool
	Timestamp time.Time
}

// NewUserMessage creates a message authored by the signed-in user.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now(),
	}
}

// NewBotMessage creates a reply from the assistant.
func NewBotMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderBot,
		Timestamp: time.Now(),
	}
}

// NewErrorMessage creates an error-flagged assistant message. The transcript
// renders these distinctly but they are ordinary entries otherwise.
func NewErrorMessage(text string) ChatMessage {
	m := NewBotMessage(text)
	m.IsError = true
	return m
}
