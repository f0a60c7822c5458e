// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the command-line surface of the FaithTalk client.
//
// Running the binary with no arguments starts the full-screen TUI; the
// subcommands here cover everything scriptable: authentication, one-shot
// prompts, an interactive REPL for terminals that cannot host the TUI,
// user administration, and configuration.
package cli
