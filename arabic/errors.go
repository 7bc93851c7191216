package arabic

import "fmt"

// OpError is a soft, structured failure from an arabic shaping operation —
// the caller can inspect Op/Reason and the shaper remains usable. Hard
// misuse panics via assert; everything else is a returned OpError.
type OpError struct {
	Op     string
	Reason string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("arabic: %s: %s", e.Op, e.Reason)
}

func opErrorf(op, format string, args ...any) *OpError {
	return &OpError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
