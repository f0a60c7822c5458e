// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP transport shared by every FaithTalk service.
//
// The client owns the concerns the services should not repeat: the base URL,
// JSON encoding on both sides, the fixed request timeout, attaching the
// bearer token, and normalizing failures into the error taxonomy in
// errors.go.
//
// Two deliberate departures from the web client this replaces:
//
//   - Credentials are attached only when the call site passes
//     api.Authenticated. There is no URL sniffing and no blanket header
//     injection; each caller states whether its endpoint needs a session.
//   - A 401 does not force navigation from inside the transport. The client
//     clears the session store, which publishes a session.Invalidated event;
//     what happens on screen is the presentation layer's decision.
package api
