// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - shared bootstrap for command handlers.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	adminsvc "github.com/faithtalk/faithtalk-tui/internal/admin"
	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/auth"
	"github.com/faithtalk/faithtalk-tui/internal/config"
	"github.com/faithtalk/faithtalk-tui/internal/llm"
	"github.com/faithtalk/faithtalk-tui/internal/logging"
	"github.com/faithtalk/faithtalk-tui/internal/session"
)

// Services bundles everything a command handler needs: configuration, the
// session store, and the three API services sharing one transport.
type Services struct {
	Config   *config.Config
	Sessions *session.Store
	Client   *api.Client
	Auth     *auth.Service
	Admin    *adminsvc.Service
	LLM      *llm.Service
}

// BuildServices loads configuration, opens the session store, and wires the
// service layer. The --server flag beats both the config file and the
// environment.
func BuildServices(args Args) (*Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if args.Server != "" {
		cfg.Server.BaseURL = args.Server
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if args.Verbose {
		level = "debug"
	}
	logging.Init(logging.Options{Level: level, Dir: dir, Console: args.Verbose})

	sessions, err := session.Open(dir)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Server.TimeoutSecs) * time.Second
	client := api.New(cfg.Server.BaseURL, timeout, sessions)
	return &Services{
		Config:   cfg,
		Sessions: sessions,
		Client:   client,
		Auth:     auth.NewService(client, sessions),
		Admin:    adminsvc.NewService(client),
		LLM:      llm.NewService(client),
	}, nil
}

// printError writes a friendly error line and returns a process exit code.
func printError(err error) int {
	msg := err.Error()
	switch {
	case errors.Is(err, api.ErrTransport):
		msg = "could not reach the server; check that it is running and the base URL is right"
	case errors.Is(err, api.ErrUnauthorized):
		msg = "your session was rejected; run 'faithtalk login' to sign in again"
	case errors.Is(err, auth.ErrNotSignedIn):
		msg = "not signed in; run 'faithtalk login' first"
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+msg)
	return 1
}
