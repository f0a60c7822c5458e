// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and usage text.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdSignup
	CmdWhoami
	CmdAsk
	CmdChat
	CmdAdmin
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Server  string

	// Command-specific
	Query       string
	Model       string
	Temperature float64
	MaxTokens   int
	Subcommand  string
	ConfigKey   string
	ConfigVal   string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `faithtalk - chat client for the FaithTalk server

Usage:
  faithtalk                   Start the TUI (default)
  faithtalk login             Sign in (prompts for email and password)
  faithtalk logout            Sign out locally
  faithtalk signup            Create an account
  faithtalk whoami            Show the signed-in account
  faithtalk ask "question"    Ask a single question and print the answer
  faithtalk chat              Interactive chat REPL
  faithtalk admin <sub>       User management (admin accounts only)
  faithtalk config [show|set|path]  Configuration
  faithtalk status            Show configuration, session, and server health
  faithtalk version           Show version information

Ask flags:
  -m, --model NAME            Model override
  --temperature N             Sampling temperature (0..2)
  --max-tokens N              Completion length cap

Admin subcommands:
  faithtalk admin list                List all accounts
  faithtalk admin promote <email>     Grant the admin role
  faithtalk admin demote <email>      Revoke the admin role
  faithtalk admin delete <email>      Delete an account (asks to confirm)

Config examples:
  faithtalk config show               Show current configuration
  faithtalk config set server.base_url http://localhost:5000
  faithtalk config set chat.model llama3-70b-8192

Global flags:
  --server URL                Server base URL for this invocation
  -q, --quiet                 Minimal output
  -v, --verbose               Verbose output (debug logging)

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("faithtalk version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args
	case "login", "signin":
		return CmdLogin, args
	case "logout", "signout":
		return CmdLogout, args
	case "signup", "register":
		return CmdSignup, args
	case "whoami", "me":
		return CmdWhoami, args
	case "ask":
		parseAskArgs(&args, remaining)
		return CmdAsk, args
	case "chat":
		parseAskArgs(&args, remaining)
		return CmdChat, args
	case "admin", "users":
		if len(remaining) > 0 {
			args.Subcommand = remaining[0]
			args.Raw = remaining[1:]
		}
		return CmdAdmin, args
	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args
	case "status", "s":
		return CmdStatus, args
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		// Unknown word: treat it as a question, matching what people type.
		parseAskArgs(&args, append([]string{cmd}, remaining...))
		return CmdAsk, args
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	args := Args{Temperature: -1}
	var remaining []string

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--server":
			if i+1 < len(argv) {
				i++
				args.Server = argv[i]
			}
		default:
			remaining = append(remaining, argv[i])
		}
	}
	return remaining, args
}

// parseAskArgs extracts ask/chat flags; everything left joins into the query.
func parseAskArgs(args *Args, argv []string) {
	var words []string
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "-m", "--model":
			if i+1 < len(argv) {
				i++
				args.Model = argv[i]
			}
		case "--temperature":
			if i+1 < len(argv) {
				i++
				if v, err := strconv.ParseFloat(argv[i], 64); err == nil {
					args.Temperature = v
				}
			}
		case "--max-tokens":
			if i+1 < len(argv) {
				i++
				if v, err := strconv.Atoi(argv[i]); err == nil {
					args.MaxTokens = v
				}
			}
		default:
			words = append(words, argv[i])
		}
	}
	args.Query = strings.Join(words, " ")
}

func parseConfigArgs(args *Args, argv []string) {
	if len(argv) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = argv[0]
	if len(argv) > 1 {
		args.ConfigKey = argv[1]
	}
	if len(argv) > 2 {
		args.ConfigVal = strings.Join(argv[2:], " ")
	}
}
