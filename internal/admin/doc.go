// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin implements the user-management operations available to
// administrator accounts: listing users, changing roles, and deleting
// accounts.
//
// The admin gate lives on the server. This package sends the calls with the
// session token attached and maps the server's refusals onto the shared
// error taxonomy; it does not try to predict what the server will allow.
package admin
