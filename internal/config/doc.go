// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// FaithTalk client.
//
// Configuration precedence, lowest to highest:
//   - built-in defaults
//   - ~/.faithtalk/config.toml
//   - FAITHTALK_* environment variables
package config
