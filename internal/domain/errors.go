package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input. The operation is refused and
	// no state changes.
	ValidationError struct {
		Message string
	}

	// CycleError indicates an illegal tree reparent that would make a folder
	// its own ancestor. The operation is aborted and the tree is unchanged.
	CycleError struct {
		Message string
	}

	// PersistenceError indicates a storage open/read/write failure. Non-fatal:
	// in-memory state is retained so the user can retry or export manually.
	PersistenceError struct {
		Message string
	}

	// ConversionError indicates malformed HTML during markdown conversion.
	// Callers fall back to plain-text extraction instead of failing the
	// whole operation.
	ConversionError struct {
		Message string
	}

	// RequestError indicates a network or HTTP failure talking to the
	// completion service. A failed request never partially inserts text.
	RequestError struct {
		Message string
	}

	// AuthError indicates a missing or rejected completion-service credential.
	AuthError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string    { return e.Message }
func (e *ValidationError) Error() string  { return e.Message }
func (e *CycleError) Error() string       { return e.Message }
func (e *PersistenceError) Error() string { return e.Message }
func (e *ConversionError) Error() string  { return e.Message }
func (e *RequestError) Error() string     { return e.Message }
func (e *AuthError) Error() string        { return e.Message }

func (e *NotFoundError) StatusCode() int    { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int  { return http.StatusBadRequest }
func (e *CycleError) StatusCode() int       { return http.StatusConflict }
func (e *PersistenceError) StatusCode() int { return http.StatusInternalServerError }
func (e *ConversionError) StatusCode() int  { return http.StatusUnprocessableEntity }
func (e *RequestError) StatusCode() int     { return http.StatusBadGateway }
func (e *AuthError) StatusCode() int        { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrCycle       = errors.New("folder cycle")
	ErrPersistence = errors.New("persistence failed")
	ErrConversion  = errors.New("conversion failed")
	ErrRequest     = errors.New("completion request failed")
	ErrAuth        = errors.New("missing or invalid credential")
)

func (e *NotFoundError) Is(target error) bool    { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool  { return target == ErrValidation }
func (e *CycleError) Is(target error) bool       { return target == ErrCycle }
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
func (e *ConversionError) Is(target error) bool  { return target == ErrConversion }
func (e *RequestError) Is(target error) bool     { return target == ErrRequest }
func (e *AuthError) Is(target error) bool        { return target == ErrAuth }
