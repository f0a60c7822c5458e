// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command handler.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/auth"
)

// HandleStatus reports configuration, session state, and server health.
func HandleStatus(svcs *Services, args Args) int {
	fmt.Println(promptStyle.Render("FaithTalk status"))
	fmt.Println(labelStyle.Render("Server:  ") + svcs.Config.Server.BaseURL)
	fmt.Println(labelStyle.Render("Timeout: ") + fmt.Sprintf("%ds", svcs.Config.Server.TimeoutSecs))
	fmt.Println(labelStyle.Render("Model:   ") + svcs.Config.Chat.Model)

	if user := svcs.Sessions.User(); svcs.Sessions.IsAuthenticated() && user != nil {
		line := "signed in as " + user.Email
		if user.IsAdmin() {
			line += " (admin)"
		}
		fmt.Println(labelStyle.Render("Session: ") + successStyle.Render(line))
	} else {
		fmt.Println(labelStyle.Render("Session: ") + infoStyle.Render("signed out"))
	}

	fmt.Println(labelStyle.Render("Health:  ") + checkServer(svcs))
	return 0
}

// checkServer probes the server with the freshest call the session allows.
func checkServer(svcs *Services) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	var err error
	if svcs.Sessions.IsAuthenticated() {
		_, err = svcs.Auth.CurrentUser(ctx)
	} else {
		// Anonymous probe: any response at all means the server is up; a 404
		// from the root path is still a healthy server.
		err = svcs.Client.Get(ctx, "/", api.Anonymous, nil)
		if err != nil && !errors.Is(err, api.ErrTransport) {
			err = nil
		}
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err == nil:
		return successStyle.Render(fmt.Sprintf("reachable (%s)", elapsed))
	case errors.Is(err, api.ErrTransport):
		return errorStyle.Render("unreachable")
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, auth.ErrUserNotFound):
		return warningStyle.Render("reachable, but the session is no longer valid")
	default:
		return warningStyle.Render("reachable with errors: " + err.Error())
	}
}
