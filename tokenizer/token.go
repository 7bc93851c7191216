package tokenizer

// ActiveState is the most recently written modifier slot on a Token — the
// pair downstream glyph extraction reads.
type ActiveState struct {
	Key   string
	Value any
}

// Token represents one input code point as it flows through the shaping
// pipeline. A Token is created inside Tokenizer.Tokenize and thereafter
// mutated only through Tokenizer operations and modifier writes.
//
// A Token marked Deleted is retained in the owning Tokenizer's vector but
// is expected to be skipped by glyph extraction — this is what lets
// ligature substitution stay index-stable across a shaping pass.
type Token struct {
	Char    rune
	state   map[string]any
	active  ActiveState
	deleted bool
}

// NewToken creates a Token for the given code point with empty state.
func NewToken(char rune) *Token {
	return &Token{Char: char}
}

// State returns the value written under key, if any.
func (t *Token) State(key string) (any, bool) {
	if t.state == nil {
		return nil, false
	}
	v, ok := t.state[key]
	return v, ok
}

// SetState writes value under key and updates ActiveState to the
// most-recently-written {key, value} pair.
func (t *Token) SetState(key string, value any) {
	if t.state == nil {
		t.state = make(map[string]any, 4)
	}
	t.state[key] = value
	t.active = ActiveState{Key: key, Value: value}
}

// ActiveState returns the most recently written {key, value} pair.
func (t *Token) ActiveState() ActiveState {
	return t.active
}

// Deleted reports whether the token has been marked deleted.
func (t *Token) Deleted() bool {
	return t.deleted
}

// SetDeleted marks or unmarks the token as deleted. Deletion never removes
// the token from its owning Tokenizer's vector — it only hides it from
// glyph extraction, preserving index stability.
func (t *Token) SetDeleted(deleted bool) {
	t.deleted = deleted
}

// clone returns a shallow copy of t, used when splicing tokens supplied by
// a caller into the tokenizer's own vector so that external aliasing of
// the slice the caller passed in can't corrupt tokenizer state later.
func (t *Token) clone() *Token {
	cp := *t
	if t.state != nil {
		cp.state = make(map[string]any, len(t.state))
		for k, v := range t.state {
			cp.state[k] = v
		}
	}
	return &cp
}

// ContextParams is an immutable, per-position view over the input stream
// passed to ContextChecker predicates and modifiers. It never outlives the
// tokenizer pass or recomputation step that created it.
type ContextParams struct {
	chars []rune
	index int
}

// NewContextParams builds a ContextParams for chars at position index.
func NewContextParams(chars []rune, index int) ContextParams {
	return ContextParams{chars: chars, index: index}
}

// Index returns the position this view is centered on.
func (p ContextParams) Index() int {
	return p.index
}

// Current returns the item at the current index, if in range.
func (p ContextParams) Current() (rune, bool) {
	return p.Get(0)
}

// Backtrack returns chars[0:index], i.e. everything strictly before the
// current position.
func (p ContextParams) Backtrack() []rune {
	if p.index <= 0 {
		return nil
	}
	if p.index > len(p.chars) {
		return p.chars
	}
	return p.chars[:p.index]
}

// Lookahead returns chars[index+1:], i.e. everything strictly after the
// current position.
func (p ContextParams) Lookahead() []rune {
	start := p.index + 1
	if start >= len(p.chars) {
		return nil
	}
	if start < 0 {
		start = 0
	}
	return p.chars[start:]
}

// Get returns the item at index+offset. offset==0 is the current item,
// offset<0 reaches into Backtrack (offset==-1 is the previous item),
// offset>0 reaches into Lookahead (offset==1 is the next item). Out of
// range returns (0, false).
func (p ContextParams) Get(offset int) (rune, bool) {
	i := p.index + offset
	if i < 0 || i >= len(p.chars) {
		return 0, false
	}
	return p.chars[i], true
}

// Len returns the total number of items in the underlying stream.
func (p ContextParams) Len() int {
	return len(p.chars)
}
