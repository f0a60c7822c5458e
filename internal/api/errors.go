// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors forming the failure taxonomy. Services and the UI match
// on these with errors.Is; the *Error carrying the server's own words is
// reachable with errors.As.
var (
	// ErrUnauthorized is an authorization failure (401). By the time a
	// caller sees it the session store has already been invalidated.
	ErrUnauthorized = errors.New("session rejected by server")

	// ErrNotFound is a 404, before any service maps it to a domain message.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is any 5xx.
	ErrUnavailable = errors.New("service temporarily unavailable")

	// ErrTransport means no response was received at all: connection
	// refused, DNS failure, or the fixed timeout elapsing.
	ErrTransport = errors.New("could not reach server")

	// ErrMalformedResponse means the server answered 2xx with a payload
	// missing what the caller needed.
	ErrMalformedResponse = errors.New("malformed server response")
)

// Error is a normalized server failure: the HTTP status plus the most
// specific message the response body offered.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Unwrap maps the status onto the taxonomy sentinel so that
// errors.Is(err, api.ErrNotFound) and friends work.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrUnavailable
	}
	return nil
}

// errorBody covers the response shapes the server uses for failures:
// a plain message, an error string, or an express-validator style list
// where the first entry's msg is the one worth surfacing.
type errorBody struct {
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// newError builds an *Error from a failed response body. Unparseable
// bodies still produce a usable error with just the status.
func newError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		switch {
		case len(b.Errors) > 0 && b.Errors[0].Msg != "":
			e.Message = b.Errors[0].Msg
		case b.Message != "":
			e.Message = b.Message
		case b.ErrMsg != "":
			e.Message = b.ErrMsg
		}
	}
	return e
}
