// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, signup, and whoami command handlers.
package cli

import (
	"context"
	"fmt"
)

// HandleLogin signs in interactively and persists the session.
func HandleLogin(svcs *Services, args Args) int {
	if svcs.Sessions.IsAuthenticated() {
		if user := svcs.Sessions.User(); user != nil {
			fmt.Println(infoStyle.Render("Already signed in as " + user.Email + ". Run 'faithtalk logout' first to switch accounts."))
			return 0
		}
	}

	email, err := promptLine("Email: ")
	if err != nil {
		return printError(err)
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return printError(err)
	}

	user, err := svcs.Auth.Login(context.Background(), email, password)
	if err != nil {
		return printError(err)
	}

	fmt.Println(successStyle.Render("Signed in as " + user.DisplayName()))
	if user.IsAdmin() {
		fmt.Println(infoStyle.Render("This account has the admin role; 'faithtalk admin' is available."))
	}
	return 0
}

// HandleLogout clears the local session.
func HandleLogout(svcs *Services, args Args) int {
	if !svcs.Sessions.IsAuthenticated() {
		fmt.Println(infoStyle.Render("Not signed in."))
		return 0
	}
	if err := svcs.Auth.Logout(); err != nil {
		return printError(err)
	}
	fmt.Println(successStyle.Render("Signed out."))
	return 0
}

// HandleSignup registers a new account interactively.
func HandleSignup(svcs *Services, args Args) int {
	username, err := promptLine("Username: ")
	if err != nil {
		return printError(err)
	}
	email, err := promptLine("Email: ")
	if err != nil {
		return printError(err)
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return printError(err)
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return printError(err)
	}
	if password != confirm {
		return printError(fmt.Errorf("passwords do not match"))
	}

	if err := svcs.Auth.Register(context.Background(), username, email, password); err != nil {
		return printError(err)
	}

	fmt.Println(successStyle.Render("Account created."))
	fmt.Println(infoStyle.Render("Run 'faithtalk login' to sign in."))
	return 0
}

// HandleWhoami shows the signed-in account, refreshed from the server.
func HandleWhoami(svcs *Services, args Args) int {
	user, err := svcs.Auth.CurrentUser(context.Background())
	if err != nil {
		return printError(err)
	}

	fmt.Println(labelStyle.Render("Username: ") + user.Username)
	fmt.Println(labelStyle.Render("Email:    ") + user.Email)
	fmt.Println(labelStyle.Render("Role:     ") + user.Role.String())
	if !user.CreatedAt.IsZero() {
		fmt.Println(labelStyle.Render("Member since: ") + user.CreatedAt.Format("2006-01-02"))
	}
	return 0
}
