package common

import (
	"errors"
	"fmt"
)

// ErrorType is the category of a catalogue error.
type ErrorType string

const (
	// ErrorTypeValidation is input rejected before any remote call.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeRemote is a failure reported by the store or object storage.
	ErrorTypeRemote ErrorType = "remote"
	// ErrorTypeMalformedCache is unreadable cached data. It is never surfaced.
	ErrorTypeMalformedCache ErrorType = "malformed_cache"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Sentinel validation errors of the relationship edit boundary.
var (
	ErrInvalidSelfLoop  = NewValidationError("invalid_self_loop", "an entity cannot be connected to itself")
	ErrMissingType      = NewValidationError("missing_type", "relationship type is required")
	ErrMissingEndpoint  = NewValidationError("missing_endpoint", "both entities must be selected")
	ErrInvalidEntityID  = NewValidationError("invalid_entity_id", "entity id is not valid")
	ErrInvalidEntity    = NewValidationError("invalid_entity", "entity name is required and type must be known")
	ErrInvalidPlatform  = NewValidationError("invalid_platform", "unknown social platform")
	ErrInvalidPositions = NewValidationError("invalid_positions", "positions must be finite numbers")
)

// ValidationError is returned for input rejected before reaching the store.
type ValidationError struct {
	Code    string
	Message string
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", ErrorTypeValidation, e.Message)
}

// RemoteError wraps a failure of the relational store or object storage.
// Operations that return it leave all state unchanged.
type RemoteError struct {
	Op  string
	Err error
}

func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", ErrorTypeRemote, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s] %s", ErrorTypeRemote, e.Op)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// MalformedCacheError reports cached data that could not be decoded.
type MalformedCacheError struct {
	Key string
	Err error
}

func (e *MalformedCacheError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", ErrorTypeMalformedCache, e.Key, e.Err)
}

func (e *MalformedCacheError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}
