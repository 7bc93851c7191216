package tokenizer

import "fmt"

// OpError is the structured soft-failure record returned by Tokenizer
// operations. Unlike a thrown exception, an OpError is a regular return
// value: callers can inspect Op and Reason and keep going.
type OpError struct {
	Op     string // the operation that failed, e.g. "insertToken"
	Reason string // a human-readable explanation
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("tokenizer: %s: %s", e.Op, e.Reason)
}

func opErrorf(op, format string, args ...any) *OpError {
	return &OpError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
