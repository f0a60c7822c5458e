// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/logging"
)

// Defaults applied when an option does not override them. They match the
// server's own fallbacks so the client and server agree on what "default"
// means.
const (
	DefaultModel       = "llama3-70b-8192"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
)

// ErrEmptyPrompt indicates a blank prompt was rejected before any request
// was sent.
var ErrEmptyPrompt = errors.New("empty prompt")

// request is the wire payload for the model endpoint.
type request struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// envelope is the provider's chat-completion response, passed through by
// the server unchanged.
type envelope struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Answer is one completed model reply.
type Answer struct {
	// Text is the assistant's message content.
	Text string
	// Model is the model that actually served the request.
	Model string
	// PromptTokens and CompletionTokens report usage when the server
	// includes it; zero otherwise.
	PromptTokens     int
	CompletionTokens int
	// Elapsed is the round-trip time as observed by the client.
	Elapsed time.Duration
}

// Option adjusts a single Ask call.
type Option func(*request)

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(r *request) {
		if model != "" {
			r.Model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temp float64) Option {
	return func(r *request) { r.Temperature = temp }
}

// WithMaxTokens overrides the completion length cap.
func WithMaxTokens(n int) Option {
	return func(r *request) {
		if n > 0 {
			r.MaxTokens = n
		}
	}
}

// Service sends prompts to the model endpoint.
type Service struct {
	client *api.Client
}

// NewService builds an LLM service on the shared transport.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Ask sends one prompt and waits for the full reply. The call requires a
// session; the server rejects anonymous prompts.
func (s *Service) Ask(ctx context.Context, prompt string, opts ...Option) (*Answer, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	req := request{
		Prompt:      prompt,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&req)
	}

	start := time.Now()
	var env envelope
	if err := s.client.Post(ctx, "/api/groq", api.Authenticated, req, &env); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	if len(env.Choices) == 0 || env.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no choices in completion", api.ErrMalformedResponse)
	}

	logging.L().Debug().Str("model", env.Model).
		Int("completion_tokens", env.Usage.CompletionTokens).
		Dur("elapsed", elapsed).
		Msg("prompt answered")

	return &Answer{
		Text:             env.Choices[0].Message.Content,
		Model:            env.Model,
		PromptTokens:     env.Usage.PromptTokens,
		CompletionTokens: env.Usage.CompletionTokens,
		Elapsed:          elapsed,
	}, nil
}
