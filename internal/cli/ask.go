// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question command handler.
//
// USABILITY: Markdown rendering when stdout is a terminal; plain text when
// piped so scripts stay clean.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/faithtalk/faithtalk-tui/internal/llm"
)

// markdownRenderer renders model answers for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain text fallback.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown, returning the input untouched on failure.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints the answer, rendered when stdout is a TTY.
func displayAnswer(text string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(text))
	} else {
		fmt.Println(text)
	}
}

// askOptions converts parsed flags and config into llm call options.
func askOptions(svcs *Services, args Args) []llm.Option {
	opts := []llm.Option{
		llm.WithModel(svcs.Config.Chat.Model),
		llm.WithTemperature(svcs.Config.Chat.Temperature),
		llm.WithMaxTokens(svcs.Config.Chat.MaxTokens),
	}
	if args.Model != "" {
		opts = append(opts, llm.WithModel(args.Model))
	}
	if args.Temperature >= 0 {
		opts = append(opts, llm.WithTemperature(args.Temperature))
	}
	if args.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(args.MaxTokens))
	}
	return opts
}

// HandleAsk sends a single question and prints the answer.
func HandleAsk(svcs *Services, args Args) int {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"no question given; usage: faithtalk ask \"question\"")
		return 2
	}
	if !svcs.Sessions.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+"not signed in; run 'faithtalk login' first")
		return 1
	}

	answer, err := svcs.LLM.Ask(context.Background(), args.Query, askOptions(svcs, args)...)
	if err != nil {
		return printError(err)
	}

	displayAnswer(answer.Text)
	if !args.Quiet && IsStdoutTTY() {
		fmt.Println(labelStyle.Render(fmt.Sprintf("%s · %d tokens · %s",
			answer.Model, answer.CompletionTokens, answer.Elapsed.Round(10*time.Millisecond))))
	}
	return 0
}
