// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned before any request is sent when the
	// session store holds no usable credential.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrMalformedResponse means a 2xx body could not be decoded or lacked
	// the field the operation needs.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidCredentials is returned by Login when the server rejects the
	// email/password pair or answers without a token.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput is wrapped by every *InputError.
	ErrInvalidInput = errors.New("invalid input")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// InputError lists the fields that failed validation before a request was built.
type InputError struct {
	Fields []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrInvalidInput, strings.Join(e.Fields, ", "))
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// HasStatus reports whether err carries a StatusError with the given code.
func HasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

const maxErrorBody = 256

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
