// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// admin_cmd.go - user management command handlers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	adminsvc "github.com/faithtalk/faithtalk-tui/internal/admin"
	"github.com/faithtalk/faithtalk-tui/internal/model"
)

// HandleAdmin dispatches the admin subcommands. The server enforces the
// admin role; a regular account simply gets a 401/403 back.
func HandleAdmin(svcs *Services, args Args) int {
	if !svcs.Sessions.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"not signed in; run 'faithtalk login' first")
		return 1
	}

	switch args.Subcommand {
	case "", "list", "ls":
		return adminList(svcs)
	case "promote":
		return adminSetRole(svcs, args, model.RoleAdmin)
	case "demote":
		return adminSetRole(svcs, args, model.RoleUser)
	case "delete", "rm":
		return adminDelete(svcs, args)
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"unknown admin subcommand "+args.Subcommand)
		fmt.Fprintln(os.Stderr, "usage: faithtalk admin [list|promote <email>|demote <email>|delete <email>]")
		return 2
	}
}

func adminList(svcs *Services) int {
	users, err := svcs.Admin.ListUsers(context.Background())
	if err != nil {
		return printError(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	w.Flush()
	return 0
}

func adminSetRole(svcs *Services, args Args, role model.Role) int {
	if len(args.Raw) == 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"user email required")
		return 2
	}

	user, err := svcs.Admin.UpdateUserRole(context.Background(), args.Raw[0], role)
	if err != nil {
		return printError(err)
	}
	fmt.Println(successStyle.Render(user.DisplayName() + " is now " + user.Role.String()))
	return 0
}

func adminDelete(svcs *Services, args Args) int {
	if len(args.Raw) == 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"user email required")
		return 2
	}
	email := args.Raw[0]

	if self := svcs.Sessions.User(); self != nil && self.Email == email {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"refusing to delete the signed-in account")
		return 1
	}
	if !args.Quiet && !promptConfirm("Delete user "+email+"? This cannot be undone.") {
		fmt.Println(infoStyle.Render("Cancelled."))
		return 0
	}

	err := svcs.Admin.DeleteUser(context.Background(), email)
	switch {
	case errors.Is(err, adminsvc.ErrAlreadyDeleted):
		fmt.Println(warningStyle.Render("That account was already deleted."))
		return 0
	case err != nil:
		return printError(err)
	}
	fmt.Println(successStyle.Render("Account deleted."))
	return 0
}
