// Package entity defines the generic record-store contract used by every
// view and by the deadline synchronizer, together with its error taxonomy.
package entity

import (
	"errors"
	"fmt"
)

// Code classifies an entity store failure.
type Code string

const (
	// CodeValidation means required fields are missing or malformed.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeNotFound means the addressed id does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeTransport means the store itself could not be reached or failed.
	CodeTransport Code = "TRANSPORT_ERROR"
)

// Error is returned by every Client operation that fails.
type Error struct {
	Code    Code
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Entity, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError builds a CodeValidation error.
func ValidationError(entity, message string, err error) *Error {
	return &Error{Code: CodeValidation, Entity: entity, Message: message, Err: err}
}

// NotFoundError builds a CodeNotFound error for id.
func NotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Entity: entity, Message: fmt.Sprintf("record %q not found", id)}
}

// TransportError builds a CodeTransport error.
func TransportError(entity, message string, err error) *Error {
	return &Error{Code: CodeTransport, Entity: entity, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

func IsTransport(err error) bool { return CodeOf(err) == CodeTransport }
