package mapgen

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput
	KindDataFetch
	KindConfiguration
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "InputError"
	case KindDataFetch:
		return "DataFetchError"
	case KindConfiguration:
		return "ConfigurationError"
	case KindOutput:
		return "OutputError"
	default:
		return "Error"
	}
}

// Error is a generation failure surfaced to the CLI or web caller.
type Error struct {
	Kind Kind
	Op   string
	Err  error

	// Transient marks fetch failures that may succeed if the caller
	// re-invokes later. Nothing is retried automatically.
	Transient bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err is a fetch failure worth re-invoking.
func IsTransient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Transient
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindInput:
		return 2
	case KindDataFetch:
		return 3
	case KindConfiguration:
		return 4
	case KindOutput:
		return 5
	default:
		return 1
	}
}
