package matching

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed matching operation for callers.
type ErrorKind int

const (
	// KindBadInput means the caller sent something unusable.
	KindBadInput ErrorKind = iota + 1
	// KindUnavailable means the catalog or inventory store failed.
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is returned by Service operations.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func badInput(op string, err error) error {
	return &Error{Kind: KindBadInput, Op: op, Err: err}
}

func unavailable(op string, err error) error {
	return &Error{Kind: KindUnavailable, Op: op, Err: err}
}

// KindOf returns the kind of err, or zero if err is not a matching error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsBadInput reports whether err was caused by caller input.
func IsBadInput(err error) bool {
	return KindOf(err) == KindBadInput
}

// IsUnavailable reports whether err was caused by a failing dependency.
func IsUnavailable(err error) bool {
	return KindOf(err) == KindUnavailable
}
