// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the signed-in user's bearer token and account record,
// persisted across runs in ~/.faithtalk/session.json.
//
// The store is an explicit dependency with a defined lifecycle: construct it
// once at startup, hand it to the API client and services, and Close it on
// exit. Nothing reads it ambiently. Every change to the authentication state
// is published to subscribers as an Event, which is how the UI learns about
// sign-ins, sign-outs, and server-side session invalidation.
package session
