// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/faithtalk/faithtalk-tui/internal/api"
	"github.com/faithtalk/faithtalk-tui/internal/logging"
	"github.com/faithtalk/faithtalk-tui/internal/model"
)

var (
	// ErrUserNotFound indicates the targeted account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyDeleted indicates a delete targeted an account that was
	// already gone. Callers may treat this as success; it is distinguishable
	// so the UI can say so.
	ErrAlreadyDeleted = errors.New("user already deleted")

	// ErrInvalidRole indicates a role change named a role the system does
	// not have. Caught before any request is sent.
	ErrInvalidRole = errors.New("invalid role")

	// ErrMissingEmail indicates a missing user identifier. Accounts are
	// addressed by email everywhere.
	ErrMissingEmail = errors.New("missing email")
)

// Service performs administrative user management.
type Service struct {
	client *api.Client
}

// NewService builds an admin service on the shared transport.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListUsers fetches every registered account.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.client.Get(ctx, "/api/admin/users", api.Authenticated, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes the account's role and returns the updated record.
// The account is addressed by email, the stable identifier. The role is
// validated locally first; an unknown role never reaches the server.
func (s *Service) UpdateUserRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	body := struct {
		Role model.Role `json:"role"`
	}{Role: role}

	var updated model.User
	err := s.client.Put(ctx, "/api/admin/users/"+url.PathEscape(email), api.Authenticated, body, &updated)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, err
	}

	logging.L().Info().Str("email", email).Str("role", string(role)).Msg("user role updated")
	return &updated, nil
}

// DeleteUser removes the account addressed by email. Deleting an account
// that no longer exists returns ErrAlreadyDeleted.
func (s *Service) DeleteUser(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingEmail
	}

	err := s.client.Delete(ctx, "/api/admin/users/"+url.PathEscape(email), api.Authenticated, nil)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAlreadyDeleted, email)
		}
		return err
	}

	logging.L().Info().Str("email", email).Msg("user deleted")
	return nil
}
