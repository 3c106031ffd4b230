package fetch

import (
	"errors"
	"fmt"
)

// ErrResponseNotOK is matched by every failure caused by a non-2xx status.
var ErrResponseNotOK = errors.New("network response was not ok")

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindTransport covers connection and request-level failures.
	KindTransport ErrorKind = iota + 1
	// KindStatus is a response with a non-2xx status code.
	KindStatus
	// KindDecode is a body that could not be read or parsed as JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error describes a failed fetch. It carries no retry metadata.
type Error struct {
	Kind       ErrorKind
	Address    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("GET %s: %v (status %d)", e.Address, ErrResponseNotOK, e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("GET %s: decoding response: %v", e.Address, e.Cause)
	default:
		return fmt.Sprintf("GET %s: %v", e.Address, e.Cause)
	}
}

func (e *Error) Unwrap() error {
	if e.Kind == KindStatus {
		return ErrResponseNotOK
	}
	return e.Cause
}

// KindOf returns the ErrorKind of err, or 0 if err is not a fetch error.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
