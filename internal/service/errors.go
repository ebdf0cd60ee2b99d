// Package service implements the contact and account flows the presentation
// layer calls: validation, persistence and role checks.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrContactNotFound is returned when an update or remove names an unknown id.
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidCredentials is returned by the login gate for any mismatch.
	ErrInvalidCredentials = errors.New("invalid username/password")
)

// User-facing storage failure messages.
const (
	MsgAddFailed    = "Could not add record!"
	MsgUpdateFailed = "Could not update the record! Please try again"
	MsgRemoveFailed = "Could not remove the record!"
	MsgListFailed   = "Could not load contacts!"
	MsgPassFailed   = "Error!!! Could not Change Password"
	MsgResetFailed  = "Error!!! Could not reset username and Password"
	MsgSeedFailed   = "Could not create user!"
	MsgLoginFailed  = "Could not check credentials!"
)

// ValidationError is a recoverable rejection of one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// OperationError is a recoverable storage failure. Message is safe to show;
// Err carries the driver error for logs.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string { return e.Message }

func (e *OperationError) Unwrap() error { return e.Err }

func failed(op, msg string, err error) *OperationError {
	return &OperationError{Op: op, Message: msg, Err: err}
}
