// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/session"
)

func newService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Store("tok-1", &model.User{Email: "jo@example.com", Role: model.RoleUser}))

	return NewService(api.New(srv.URL, 0, store))
}

func TestAskExtractsFirstChoice(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/groq", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get("X-Auth-Token"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hello", req["prompt"])
		assert.Equal(t, "llama3-70b-8192", req["model"])
		assert.InDelta(t, 0.7, req["temperature"], 1e-9)
		assert.EqualValues(t, 2048, req["maxTokens"])

		w.Write([]byte(`{
			"model": "llama3-70b-8192",
			"choices": [{"message": {"role": "assistant", "content": "Hi there"}}],
			"usage": {"prompt_tokens": 4, "completion_tokens": 3, "total_tokens": 7}
		}`))
	}))

	ans, err := svc.Ask(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", ans.Text)
	assert.Equal(t, "llama3-70b-8192", ans.Model)
	assert.Equal(t, 3, ans.CompletionTokens)
}

func TestAskOptionsOverrideDefaults(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3-8b-8192", req["model"])
		assert.InDelta(t, 0.2, req["temperature"], 1e-9)
		assert.EqualValues(t, 512, req["maxTokens"])

		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))

	_, err := svc.Ask(context.Background(), "Hello",
		WithModel("llama3-8b-8192"), WithTemperature(0.2), WithMaxTokens(512))
	require.NoError(t, err)
}

func TestAskRejectsBlankPrompt(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := svc.Ask(context.Background(), "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestAskEmptyChoicesIsMalformed(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))

	_, err := svc.Ask(context.Background(), "Hello")
	assert.ErrorIs(t, err, api.ErrMalformedResponse)
}

func TestAskServerOverloadedIsUnavailable(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"upstream provider error"}`, http.StatusBadGateway)
	}))

	_, err := svc.Ask(context.Background(), "Hello")
	assert.ErrorIs(t, err, api.ErrUnavailable)
}
