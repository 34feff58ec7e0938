package repository

import "fmt"

// FailureKind classifies repository failures.
type FailureKind string

const (
	// FailureTransport covers unreachable, denied or quota-limited store calls.
	FailureTransport FailureKind = "transport"
	// FailureDecode covers rows that violate the hard decode contract.
	FailureDecode FailureKind = "decode"
)

// RepositoryError wraps any transport or decode failure crossing the
// repository boundary. Raw store errors never leak past it unwrapped.
type RepositoryError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("ticket repository %s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func transportFailure(op string, err error) *RepositoryError {
	return &RepositoryError{Kind: FailureTransport, Op: op, Err: err}
}
