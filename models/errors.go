package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the HTTP layer can map them to
// status codes without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindStore
)

// AppError is the error type returned by all services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: resource + " not found"}
}

// NewStoreError wraps an underlying storage failure. The wrapped error is for
// logs only and must never reach the client.
func NewStoreError(message string, err error) *AppError {
	return &AppError{Kind: KindStore, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindStore so
// unclassified failures surface as generic server errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}
