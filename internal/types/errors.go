package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by where it was detected.
type ErrorKind int

const (
	// KindUsage is a missing or invalid command-line argument.
	KindUsage ErrorKind = iota + 1
	// KindInput is an unreadable or malformed source table.
	KindInput
	// KindOutput is an uncreatable directory or unwritable file.
	KindOutput
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Every class aborts the run.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation.
func NewError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
