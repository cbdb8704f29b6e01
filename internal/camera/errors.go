package camera

import (
	"errors"
	"fmt"
)

// Kind classifies a camera failure. The CLI maps each kind to a distinct
// process exit code; the raw vendor response codes never leave this package.
type Kind int

const (
	// KindAPI is any command the camera rejected for a reason other than
	// auth or missing support, plus malformed response bodies.
	KindAPI Kind = iota
	// KindAuth covers rejected credentials, rejected or expired tokens,
	// and a nominally successful login that returned no token.
	KindAuth
	// KindNetwork covers connect failures, timeouts, and HTTP-level errors.
	KindNetwork
	// KindUnsupported means the command is valid in the API surface but the
	// camera model or firmware does not implement it. Callers probing
	// optional capabilities should treat this as recoverable.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindUnsupported:
		return "unsupported"
	default:
		return "api"
	}
}

// Error is the typed failure returned by every Client method.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// As extracts the typed camera error from an error chain.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsUnsupported reports whether err means the camera lacks the feature.
func IsUnsupported(err error) bool {
	ce, ok := As(err)
	return ok && ce.Kind == KindUnsupported
}

func authErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func networkErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf(format, args...)}
}

func apiErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindAPI, Message: fmt.Sprintf(format, args...)}
}

func unsupportedErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindUnsupported, Message: fmt.Sprintf(format, args...)}
}
