package source

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes an operation can report.
type ErrorKind int

const (
	// SchemeError marks a URN or URL that does not match any known pattern.
	SchemeError ErrorKind = iota + 1
	// AuthError marks a rejected or unobtainable API token.
	AuthError
	// ParseError marks a payload that is not in the expected shape.
	ParseError
	// NotFoundError marks a well-formed request for something that does not exist.
	NotFoundError
	// NetworkError marks a transport failure or an unexpected HTTP status.
	NetworkError
)

// Sentinels for errors.Is checks.
var (
	ErrScheme   = errors.New("scheme error")
	ErrAuth     = errors.New("auth error")
	ErrParse    = errors.New("parse error")
	ErrNotFound = errors.New("not found")
	ErrNetwork  = errors.New("network error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case SchemeError:
		return ErrScheme
	case AuthError:
		return ErrAuth
	case ParseError:
		return ErrParse
	case NotFoundError:
		return ErrNotFound
	case NetworkError:
		return ErrNetwork
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	switch k {
	case SchemeError:
		return "SchemeError"
	case AuthError:
		return "AuthError"
	case ParseError:
		return "ParseError"
	case NotFoundError:
		return "NotFoundError"
	case NetworkError:
		return "NetworkError"
	default:
		return "UnknownError"
	}
}

// Error carries the failure class, a human-readable message and the offending input.
type Error struct {
	Kind  ErrorKind
	Input string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Input)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

// Fail builds an *Error. The format follows fmt.Errorf, so %w keeps the cause reachable.
func Fail(kind ErrorKind, input string, format string, args ...any) error {
	return &Error{Kind: kind, Input: input, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err under kind unless it already carries a kind.
func Wrap(kind ErrorKind, input string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Input: input, Err: err}
}

// KindOf returns the failure class of err, or 0 when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
