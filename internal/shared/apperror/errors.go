package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind is the caller-facing error class. Every error leaving a service is
// either one of these kinds or wrapped into StorageUnavailable.
type Kind string

const (
	KindMissingField       Kind = "MISSING_FIELD"
	KindInvalidRating      Kind = "INVALID_RATING"
	KindCommentTooLong     Kind = "COMMENT_TOO_LONG"
	KindNotFound           Kind = "NOT_FOUND"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindForbidden          Kind = "FORBIDDEN"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
)

// Error is the structured error returned by the engine.
type Error struct {
	Kind    Kind
	Code    string // domain code, e.g. REV001
	Message string

	// RetryAfter is only set for KindRateLimited.
	RetryAfter time.Duration

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an error of the given kind keeping cause in the chain.
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: cause}
}

func MissingField(message string) *Error {
	return New(KindMissingField, "VAL001", message)
}

func InvalidRating(message string) *Error {
	return New(KindInvalidRating, "VAL002", message)
}

func CommentTooLong(message string) *Error {
	return New(KindCommentTooLong, "VAL003", message)
}

// Storage hides a lower-layer failure behind a generic message.
func Storage(cause error) *Error {
	return Wrap(KindStorageUnavailable, "SYS002", "Service temporarily unavailable", cause)
}

// As extracts *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err. Anything that is not an *Error counts as
// StorageUnavailable.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindStorageUnavailable
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindMissingField, KindInvalidRating, KindCommentTooLong:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}
