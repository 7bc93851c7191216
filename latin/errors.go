package latin

import "fmt"

// OpError is a soft, structured failure from a latin shaping operation,
// mirroring tokenizer.OpError's and arabic.OpError's two-tier error
// handling shape: recoverable conditions return an OpError, programmer
// misuse panics.
type OpError struct {
	Op     string
	Reason string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("latin: %s: %s", e.Op, e.Reason)
}

func opErrorf(op, format string, args ...any) *OpError {
	return &OpError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
