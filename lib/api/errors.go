// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response decoded from the backend's error
// envelope. All backend error responses share this JSON shape.
type APIError struct {
	// StatusCode is the HTTP status of the response. Not part of the
	// JSON body (the body repeats it in Status).
	StatusCode int `json:"-"`

	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Reason    string   `json:"error"`
	Messages  []string `json:"messages"`
}

// Error implements the error interface. Prefers the backend's message
// list; falls back to the reason phrase.
func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Reason, e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("api: %s (%d)", e.Reason, e.StatusCode)
}

// UserMessage returns the text shown in the console status bar: the
// backend's first message when present, otherwise the reason phrase.
func (e *APIError) UserMessage() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
