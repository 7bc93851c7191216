package tokenizer

import "fmt"

// CheckFunc is a pure predicate over a ContextParams snapshot, used as a
// ContextChecker's start or end test.
type CheckFunc func(params ContextParams) bool

// ContextRange is a half-open span [StartIndex, StartIndex+EndOffset) over
// the token stream, tagged with the name of the context that produced it
// and a stable RangeID of the form "<name>.<ordinal>".
type ContextRange struct {
	ContextName string
	StartIndex  int
	EndOffset   int
	RangeID     string
}

// End returns the exclusive end index of the range.
func (r ContextRange) End() int {
	return r.StartIndex + r.EndOffset
}

// Len returns the number of tokens covered by the range.
func (r ContextRange) Len() int {
	return r.EndOffset
}

// ContextChecker pairs a name with start/end predicates and accumulates
// the ranges found for it across a tokenizer pass. At most one range is
// "open" (start seen, end not yet seen) at any time.
type ContextChecker struct {
	Name       string
	CheckStart CheckFunc
	CheckEnd   CheckFunc

	ranges    []ContextRange
	open      bool
	openStart int
	ordinal   int
}

// Ranges returns the checker's completed ranges, ordered by StartIndex.
func (c *ContextChecker) Ranges() []ContextRange {
	out := make([]ContextRange, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// OpenRange reports whether a range is currently open and, if so, its
// start index.
func (c *ContextChecker) OpenRange() (int, bool) {
	return c.openStart, c.open
}

func (c *ContextChecker) resetRanges() {
	c.ranges = c.ranges[:0]
	c.open = false
	c.openStart = 0
	c.ordinal = 0
}

func (c *ContextChecker) startRange(index int) {
	c.open = true
	c.openStart = index
}

// closeRange finalizes the currently open range with the given length
// (endOffset = index - openStart + 1), assigning it a stable RangeID.
func (c *ContextChecker) closeRange(endOffset int) ContextRange {
	rng := ContextRange{
		ContextName: c.Name,
		StartIndex:  c.openStart,
		EndOffset:   endOffset,
		RangeID:     fmt.Sprintf("%s.%d", c.Name, c.ordinal),
	}
	c.ranges = append(c.ranges, rng)
	c.ordinal++
	c.open = false
	return rng
}
