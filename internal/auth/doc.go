// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements account registration, login, logout, and profile
// lookup against the FaithTalk server.
//
// Login is the single place a session enters the store: on success it
// persists the token and user record before returning, so callers never
// juggle credentials themselves. Logout is purely local; the server keeps
// no session state worth revoking.
package auth
