// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// WelcomeText is the canned greeting that seeds every new transcript.
const WelcomeText = "Welcome to FaithTalk! How can I help you today?"

// Transcript is the ordered, append-only sequence of chat messages for the
// current run. It is not safe for concurrent use; the UI event loop is the
// only writer.
type Transcript struct {
	messages []ChatMessage
}

// NewTranscript returns a transcript seeded with the welcome message.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Append(NewBotMessage(WelcomeText))
	return t
}

// Append adds a message to the end of the transcript and returns its ID.
func (t *Transcript) Append(m ChatMessage) string {
	t.messages = append(t.messages, m)
	return m.ID
}

// Messages returns the messages in order. The returned slice is shared;
// callers must not mutate it.
func (t *Transcript) Messages() []ChatMessage {
	return t.messages
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or nil when empty.
func (t *Transcript) Last() *ChatMessage {
	if len(t.messages) == 0 {
		return nil
	}
	return &t.messages[len(t.messages)-1]
}
