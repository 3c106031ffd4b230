package fetch

import "time"

// Status is the active tag of a State.
type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an activation.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// State is the tri-state result of reading one address. Data is only
// meaningful when Status is StatusSucceeded, Err only when StatusFailed.
type State[T any] struct {
	Address string
	Status  Status
	Data    T
	Err     error

	// Size is the response body length in bytes.
	Size int64
	// Took is the wall time from request start to decoded body.
	Took time.Duration
}

func pending[T any](address string) State[T] {
	return State[T]{Address: address, Status: StatusPending}
}

func succeeded[T any](address string, data T, meta Meta) State[T] {
	return State[T]{
		Address: address,
		Status:  StatusSucceeded,
		Data:    data,
		Size:    meta.Size,
		Took:    meta.Took,
	}
}

func failed[T any](address string, err error, meta Meta) State[T] {
	return State[T]{
		Address: address,
		Status:  StatusFailed,
		Err:     err,
		Took:    meta.Took,
	}
}
