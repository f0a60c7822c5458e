// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive chat REPL for terminals that cannot host the TUI.
//
// USABILITY: liner provides readline-style editing and history navigation.
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Forget nothing server-side; clears the screen
//   /model [name]       Show or switch the model for this session
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel the current request
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/faithtalk/faithtalk-tui/internal/config"
	"github.com/faithtalk/faithtalk-tui/internal/llm"
	"github.com/faithtalk/faithtalk-tui/internal/model"
)

// chatREPL wraps liner with history persistence.
type chatREPL struct {
	line        *liner.State
	historyFile string
}

func newChatREPL() *chatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &chatREPL{line: line, historyFile: filepath.Join(dir, "chat_history")}

	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *chatREPL) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// close saves history (0600, the prompts are the user's own words) and
// restores the terminal.
func (r *chatREPL) close() {
	if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// HandleChat runs the interactive REPL.
func HandleChat(svcs *Services, args Args) int {
	if !svcs.Sessions.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"not signed in; run 'faithtalk login' first")
		return 1
	}

	repl := newChatREPL()
	defer repl.close()

	sessionModel := svcs.Config.Chat.Model
	if args.Model != "" {
		sessionModel = args.Model
	}

	if !args.Quiet {
		fmt.Println(promptStyle.Render("FaithTalk chat"))
		fmt.Println(infoStyle.Render(model.WelcomeText))
		fmt.Println(labelStyle.Render("Type /help for commands, /quit to exit."))
		fmt.Println()
	}

	// Ctrl+C during a request cancels that request, not the REPL.
	var cancelCurrent context.CancelFunc
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			if cancelCurrent != nil {
				cancelCurrent()
			}
		}
	}()

	for {
		input, err := repl.read(promptStyle.Render("you> "))
		if err != nil {
			// liner.ErrPromptAborted (Ctrl+C) or io.EOF (Ctrl+D).
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit := handleSlashCommand(input, &sessionModel)
			if quit {
				return 0
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return 0
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancelCurrent = cancel
		answer, err := svcs.LLM.Ask(ctx, input,
			llm.WithModel(sessionModel),
			llm.WithTemperature(svcs.Config.Chat.Temperature),
			llm.WithMaxTokens(svcs.Config.Chat.MaxTokens))
		cancelCurrent = nil
		cancel()

		if err != nil {
			if ctx.Err() == context.Canceled {
				fmt.Fprintln(os.Stderr, warningStyle.Render("[cancelled]"))
				continue
			}
			fmt.Fprintln(os.Stderr, errorStyle.Render("[error] ")+err.Error())
			continue
		}

		displayAnswer(answer.Text)
		fmt.Println()
	}
}

// handleSlashCommand processes an interactive command; returns true to exit.
func handleSlashCommand(input string, sessionModel *string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true
	case "/clear", "/c":
		fmt.Print("\033[2J\033[H")
	case "/model", "/m":
		if len(fields) > 1 {
			*sessionModel = fields[1]
			fmt.Println(successStyle.Render("Model switched to " + *sessionModel))
		} else {
			fmt.Println(infoStyle.Render("Current model: " + *sessionModel))
		}
	case "/help", "/h":
		fmt.Println(infoStyle.Render("Commands: /model [name] · /clear · /quit"))
	default:
		fmt.Println(warningStyle.Render("Unknown command " + fields[0] + "; try /help"))
	}
	return false
}
