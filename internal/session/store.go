// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/util"
)

// FileName is the session file name inside the config directory.
const FileName = "session.json"

// persisted is the on-disk shape: the two values the web client kept in
// localStorage, in one file.
type persisted struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// Store owns the persisted session state. Updates are last-write-wins under
// a mutex; there is no compare-and-swap and none is needed, every writer
// replaces the whole state.
type Store struct {
	mu    sync.Mutex
	path  string
	state persisted

	subMu sync.Mutex
	subs  []chan Event
}

// Open loads the session store backed by the given directory. A missing or
// malformed file yields an empty (signed-out) store, not an error.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("session: empty state directory")
	}
	s := &Store{path: filepath.Join(dir, FileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: failed to read %s: %w", s.path, err)
	}

	// Malformed state is treated as absent: the user simply signs in again.
	var p persisted
	if err := json.Unmarshal(data, &p); err == nil {
		s.state = p
	}
	return s, nil
}

// Store saves the token and user record and persists them, then notifies
// subscribers of the sign-in.
func (s *Store) Store(token string, user *model.User) error {
	s.mu.Lock()
	s.state = persisted{Token: token, User: user}
	err := s.flushLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	email := ""
	if user != nil {
		email = user.Email
	}
	s.publish(Event{Kind: SignedIn, Email: email})
	return nil
}

// Clear empties the store, removes the file, and notifies subscribers of a
// local sign-out.
func (s *Store) Clear() error {
	if err := s.reset(); err != nil {
		return err
	}
	s.publish(Event{Kind: SignedOut})
	return nil
}

// Invalidate empties the store like Clear but publishes an Invalidated
// event. The API client calls this when the server returns 401.
func (s *Store) Invalidate() error {
	if err := s.reset(); err != nil {
		return err
	}
	s.publish(Event{Kind: Invalidated})
	return nil
}

func (s *Store) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = persisted{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: failed to remove %s: %w", s.path, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// User returns the stored user record, or nil when absent. A copy is
// returned so callers cannot mutate the store's state.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// IsAuthenticated reports whether a token is present. It says nothing about
// the token's validity; only the server can decide that.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Subscribe returns a channel receiving every subsequent auth-state event.
// The channel is buffered; slow consumers drop events rather than block
// the publisher.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, 8)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Close releases all subscriber channels.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("session: failed to encode state: %w", err)
	}
	// 0600: the token is a credential.
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("session: failed to write %s: %w", s.path, err)
	}
	return nil
}
