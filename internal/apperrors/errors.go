// Package apperrors defines the error taxonomy shared by services and
// handlers. Handlers translate these to HTTP status codes in one place
// (the server's error handler); services only wrap and return them.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad or missing client input (400).
	ErrValidation = errors.New("validation error")
	// ErrSignature marks a webhook authenticity failure (400, no mutation).
	ErrSignature = errors.New("signature error")
	// ErrNotFound marks a lookup miss (404).
	ErrNotFound = errors.New("not found")
	// ErrConnection marks a failure to establish the database pool (500).
	ErrConnection = errors.New("connection error")
	// ErrQuery wraps a driver error from an issued statement (500).
	ErrQuery = errors.New("query error")
	// ErrUpstream marks a payment-processor call failure (500).
	ErrUpstream = errors.New("upstream error")
)

// Validation returns a client-input error with the given message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Signature wraps a webhook verification failure.
func Signature(err error) error {
	return fmt.Errorf("%w: %v", ErrSignature, err)
}

// NotFound returns a lookup-miss error for the given entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Query wraps a driver error from a statement.
func Query(err error) error {
	return fmt.Errorf("%w: %v", ErrQuery, err)
}

// Upstream wraps a payment-processor failure.
func Upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
