// Package apperrors defines the caller-facing error taxonomy of the service layer.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindInvalidToken
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// InternalMessage is the only text a caller ever sees for an internal failure.
const InternalMessage = "unexpected error, check server logs"

// Error is an error safe to surface to callers. Err holds the cause for logging
// and is never rendered by Error().
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing lookup, update or delete target.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation, carrying the storage detail.
func Conflict(detail string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: detail, Err: cause}
}

// Unauthorized reports rejected credentials.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// InvalidToken reports a bearer token that failed verification.
func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "token not valid", Err: cause}
}

// Forbidden reports an authenticated caller lacking a required role.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal hides cause behind the generic internal message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
