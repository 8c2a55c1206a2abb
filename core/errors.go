package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ConflictError reports a mutation refused because of the current state of the data.
type ConflictError struct {
	msg string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{msg: msg}
}

func (err *ConflictError) Error() string {
	return err.msg
}

// RemoteError is a failed gateway call. Message is the backend's own, human-readable description.
type RemoteError struct {
	Op       string
	Resource string
	Message  string
	Err      error
}

func (err *RemoteError) Error() string {
	return err.Message
}

func (err *RemoteError) Unwrap() error { return err.Err }

// Details includes the operation and resource; meant for logs.
func (err *RemoteError) Details() string {
	return fmt.Sprintf("%s %s: %s", err.Op, err.Resource, err.Message)
}

func NewRemoteError(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if rErr, ok := errors.Cause(err).(*RemoteError); ok {
		return rErr
	}
	return &RemoteError{Op: op, Resource: resource, Message: err.Error(), Err: err}
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
