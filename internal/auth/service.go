// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/logging"
	"github.com/faithtalk/faithtalk-tui/internal/model"
	"github.com/faithtalk/faithtalk-tui/internal/session"
)

// Sentinel errors for pre-flight failures. These surface before any request
// leaves the machine.
var (
	// ErrNotSignedIn indicates an operation that needs a session ran
	// without one.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrUserNotFound indicates the server has no account for the email.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports a single field that failed pre-flight validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// registerRequest mirrors the server's registration payload.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// loginRequest mirrors the server's login payload.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse is what the server returns on successful login.
type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Service performs authentication operations. All methods are safe for
// concurrent use.
type Service struct {
	client   *api.Client
	sessions *session.Store
	validate *validator.Validate
}

// NewService builds an auth service on the shared transport and session
// store.
func NewService(client *api.Client, sessions *session.Store) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates a new account. It does not sign the user in; the server
// expects a separate login afterwards.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := s.preflight(req); err != nil {
		return err
	}

	if err := s.client.Post(ctx, "/api/auth/register", api.Anonymous, req, nil); err != nil {
		return err
	}
	logging.L().Info().Str("email", email).Msg("account registered")
	return nil
}

// Login authenticates with email and password. On success the session is
// persisted before Login returns.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	req := loginRequest{Email: email, Password: password}
	if err := s.preflight(req); err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := s.client.Post(ctx, "/api/auth/login", api.Anonymous, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", api.ErrMalformedResponse)
	}

	if err := s.sessions.Store(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("login succeeded but session could not be saved: %w", err)
	}
	logging.L().Info().Str("email", resp.User.Email).Str("role", string(resp.User.Role)).
		Msg("signed in")
	return resp.User, nil
}

// Logout clears the local session. No server call is made.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// CurrentUser fetches the freshest profile for the signed-in account and
// refreshes the cached user record.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	cached := s.sessions.User()
	if !s.sessions.IsAuthenticated() || cached == nil || cached.Email == "" {
		return nil, ErrNotSignedIn
	}

	var user model.User
	path := "/api/auth/me?email=" + url.QueryEscape(cached.Email)
	if err := s.client.Get(ctx, path, api.Authenticated, &user); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, cached.Email)
		}
		return nil, err
	}

	// Keep the cached record current; the role may have changed server-side.
	if err := s.sessions.Store(s.sessions.Token(), &user); err != nil {
		logging.L().Warn().Err(err).Msg("failed to refresh cached user record")
	}
	return &user, nil
}

// IsAuthenticated reports whether a session token is present locally.
func (s *Service) IsAuthenticated() bool {
	return s.sessions.IsAuthenticated()
}

// User returns the cached user record, or nil when signed out.
func (s *Service) User() *model.User {
	return s.sessions.User()
}

// preflight validates a request struct and converts the first failure into
// a ValidationError with a user-facing message.
func (s *Service) preflight(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	return &ValidationError{Field: fieldName(errs[0]), Message: fieldMessage(errs[0])}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "username"
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return fe.Field()
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
