// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// EventKind classifies an authentication-state change.
type EventKind int

const (
	// SignedIn fires after a token and user record are stored.
	SignedIn EventKind = iota
	// SignedOut fires after a local logout cleared the store.
	SignedOut
	// Invalidated fires when the server rejected the session (401) and the
	// store was cleared as a consequence. The transport publishes this; the
	// presentation layer decides what navigation follows.
	Invalidated
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case SignedIn:
		return "signed-in"
	case SignedOut:
		return "signed-out"
	case Invalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Event describes a single authentication-state change.
type Event struct {
	Kind EventKind
	// Email identifies the affected account when known; empty on
	// invalidation, where the record may already be gone.
	Email string
}
