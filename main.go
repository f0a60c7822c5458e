// FaithTalk TUI - a terminal client for the FaithTalk chat server.
//
// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faithtalk/faithtalk-tui/internal/cli"
	"github.com/faithtalk/faithtalk-tui/internal/logging"
	"github.com/faithtalk/faithtalk-tui/internal/ui/app"
	"github.com/faithtalk/faithtalk-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	svcs, err := cli.BuildServices(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer svcs.Sessions.Close()

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(svcs))
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(svcs, args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(svcs, args))
	case cli.CmdSignup:
		os.Exit(cli.HandleSignup(svcs, args))
	case cli.CmdWhoami:
		os.Exit(cli.HandleWhoami(svcs, args))
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(svcs, args))
	case cli.CmdChat:
		os.Exit(cli.HandleChat(svcs, args))
	case cli.CmdAdmin:
		os.Exit(cli.HandleAdmin(svcs, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(svcs, args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(svcs, args))
	default:
		cli.PrintUsage()
		os.Exit(2)
	}
}

// runTUI starts the full-screen interface.
func runTUI(svcs *cli.Services) int {
	theme := styles.NewTheme()
	root := app.New(theme, svcs.Sessions, svcs.Auth, svcs.Admin, svcs.LLM)

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.L().Error().Err(err).Msg("TUI terminated with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
