// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm sends prompts to the FaithTalk server's language-model
// endpoint and extracts the assistant's reply.
//
// The server proxies a chat-completion provider and returns the provider's
// envelope verbatim; the reply text lives at choices[0].message.content.
// Everything else in the envelope is surfaced through Answer for callers
// that want token counts.
package llm
