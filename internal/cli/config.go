// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration command handlers.
package cli

import (
	"fmt"
	"os"

	"github.com/faithtalk/faithtalk-tui/internal/config"
)

// HandleConfig implements show/set/path for the TOML config file.
func HandleConfig(svcs *Services, args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(svcs)
	case "set":
		return configSet(svcs, args)
	case "path":
		path, err := config.Path()
		if err != nil {
			return printError(err)
		}
		fmt.Println(path)
		return 0
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"unknown config subcommand "+args.Subcommand)
		fmt.Fprintln(os.Stderr, "usage: faithtalk config [show|set <key> <value>|path]")
		return 2
	}
}

func configShow(svcs *Services) int {
	for _, key := range config.Keys() {
		val, err := svcs.Config.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s = %v\n", labelStyle.Render(key), val)
	}
	return 0
}

func configSet(svcs *Services, args Args) int {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"usage: faithtalk config set <key> <value>")
		fmt.Fprintln(os.Stderr, "keys:")
		for _, key := range config.Keys() {
			fmt.Fprintln(os.Stderr, "  "+key)
		}
		return 2
	}

	if err := svcs.Config.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return printError(err)
	}
	if err := config.Save(svcs.Config); err != nil {
		return printError(err)
	}
	fmt.Println(successStyle.Render(args.ConfigKey + " = " + args.ConfigVal))
	return 0
}
