package tokenizer

// ModifierCond gates whether a modifier writes to a newly created token.
// A nil ModifierCond always matches.
type ModifierCond func(tok *Token, params ContextParams) bool

// ModifierFunc computes the value a modifier writes into a token's state
// under its registered id.
type ModifierFunc func(tok *Token, params ContextParams) any

// Tokenizer owns a mutable token vector and a registry of named context
// checkers, and drives the single forward scan that builds both.
type Tokenizer struct {
	tokens   []*Token
	checkers map[string]*ContextChecker
	order    []string // registration order
	bus      *EventBus[*Tokenizer]
}

// New creates an empty Tokenizer with its bootstrapping contract already
// wired: the six mutating events are subscribed to the tokenizer's own
// range-recomputation step before any caller gets a chance to register
// handlers of their own.
func New() *Tokenizer {
	t := &Tokenizer{
		checkers: make(map[string]*ContextChecker),
		bus:      NewEventBus[*Tokenizer](coreEvents...),
	}
	for _, name := range mutatingEvents {
		// Bootstrapped handlers are registered first so that
		// user-supplied handlers for the same event always observe
		// already-recomputed context ranges.
		if _, err := t.bus.On(name, func(tok *Tokenizer, _ any) error {
			return tok.updateContextsRanges()
		}); err != nil {
			panic("tokenizer: bootstrapping failed: " + err.Error())
		}
	}
	return t
}

// On subscribes fn to one of the tokenizer's core events. An unknown event
// name or a nil fn is reported as an *OpError.
func (t *Tokenizer) On(name EventName, fn Handler[*Tokenizer]) (Subscription, error) {
	sub, err := t.bus.On(name, fn)
	if err != nil {
		return sub, &OpError{Op: "on", Reason: err.Error()}
	}
	return sub, nil
}

// Off removes a previously registered subscription.
func (t *Tokenizer) Off(sub Subscription) {
	t.bus.Off(sub)
}

// RegisterContextChecker registers a new named context and appends it to
// the ordered checker list used by every scan.
func (t *Tokenizer) RegisterContextChecker(name string, start, end CheckFunc) error {
	if _, exists := t.checkers[name]; exists {
		return opErrorf("registerContextChecker", "context %q already registered", name)
	}
	if start == nil || end == nil {
		return opErrorf("registerContextChecker", "start and end predicates must be non-nil")
	}
	c := &ContextChecker{Name: name, CheckStart: start, CheckEnd: end}
	t.checkers[name] = c
	t.order = append(t.order, name)
	return nil
}

// RegisterModifier subscribes a newToken handler that, when cond holds (or
// cond is nil), writes token.State[id] = mod(token, params) and updates
// the token's ActiveState.
func (t *Tokenizer) RegisterModifier(id string, cond ModifierCond, mod ModifierFunc) (Subscription, error) {
	if mod == nil {
		return Subscription{}, opErrorf("registerModifier", "modifier function must not be nil")
	}
	return t.bus.On(EventNewToken, func(tok *Tokenizer, payload any) error {
		p, ok := payload.(NewTokenPayload)
		if !ok {
			return nil
		}
		if cond != nil && !cond(p.Token, p.Params) {
			return nil
		}
		p.Token.SetState(id, mod(p.Token, p.Params))
		return nil
	})
}

// GetContext returns the named checker, if registered.
func (t *Tokenizer) GetContext(name string) (*ContextChecker, bool) {
	c, ok := t.checkers[name]
	return c, ok
}

// GetContextRanges returns the completed ranges for the named context.
func (t *Tokenizer) GetContextRanges(name string) ([]ContextRange, bool) {
	c, ok := t.checkers[name]
	if !ok {
		return nil, false
	}
	return c.Ranges(), true
}

// GetRangeTokens returns the tokens covered by rng.
func (t *Tokenizer) GetRangeTokens(rng ContextRange) []*Token {
	start, end := clampRange(rng.StartIndex, rng.End(), len(t.tokens))
	out := make([]*Token, end-start)
	copy(out, t.tokens[start:end])
	return out
}

// RangeToText renders the characters covered by rng back to a string.
func (t *Tokenizer) RangeToText(rng ContextRange) string {
	toks := t.GetRangeTokens(rng)
	rs := make([]rune, len(toks))
	for i, tok := range toks {
		rs[i] = tok.Char
	}
	return string(rs)
}

// GetText concatenates every token's original character, regardless of
// any shaping state written since tokenization.
func (t *Tokenizer) GetText() string {
	rs := make([]rune, len(t.tokens))
	for i, tok := range t.tokens {
		rs[i] = tok.Char
	}
	return string(rs)
}

// Len returns the number of tokens currently held.
func (t *Tokenizer) Len() int {
	return len(t.tokens)
}

// TokenAt returns the token at index i, if in range.
func (t *Tokenizer) TokenAt(i int) (*Token, bool) {
	if i < 0 || i >= len(t.tokens) {
		return nil, false
	}
	return t.tokens[i], true
}

// Tokens returns a copy of the current token vector.
func (t *Tokenizer) Tokens() []*Token {
	out := make([]*Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

// Tokenize rebuilds the token vector from text and resets every
// registered checker's ranges, then performs a single forward scan
// building both.
func (t *Tokenizer) Tokenize(text string) []*Token {
	t.tokens = t.tokens[:0]
	for _, name := range t.order {
		t.checkers[name].resetRanges()
	}

	chars := []rune(text)
	_ = t.bus.Dispatch(t, EventStart, nil)
	for i, c := range chars {
		params := NewContextParams(chars, i)
		_ = t.bus.Dispatch(t, EventNext, NextPayload{Params: params})
		t.runContextCheck(params)
		tok := NewToken(c)
		t.tokens = append(t.tokens, tok)
		_ = t.bus.Dispatch(t, EventNewToken, NewTokenPayload{Token: tok, Params: params})
	}
	_ = t.bus.Dispatch(t, EventEnd, EndPayload{Tokens: t.Tokens()})
	tracer().Debugf("tokenize: %d tokens from %d runes", len(t.tokens), len(chars))
	return t.Tokens()
}

// runContextCheck evaluates every registered checker, in registration
// order, against params — opening and/or closing ranges as their
// CheckStart/CheckEnd predicates dictate.
func (t *Tokenizer) runContextCheck(params ContextParams) {
	for _, name := range t.order {
		c := t.checkers[name]
		if !c.open && c.CheckStart(params) {
			c.startRange(params.Index())
			_ = t.bus.Dispatch(t, EventContextStart, ContextStartPayload{Name: c.Name, Index: c.openStart})
		}
		if c.open && c.CheckEnd(params) {
			offset := params.Index() - c.openStart + 1
			rng := c.closeRange(offset)
			_ = t.bus.Dispatch(t, EventContextEnd, ContextEndPayload{Name: c.Name, Range: rng})
		}
	}
}

// updateContextsRanges resets and rescans every registered context from
// the current token vector, then dispatches EventUpdateContextsRanges.
// It is the subscription target of every mutating operation.
func (t *Tokenizer) updateContextsRanges() error {
	for _, name := range t.order {
		t.checkers[name].resetRanges()
	}
	chars := make([]rune, len(t.tokens))
	for i, tok := range t.tokens {
		chars[i] = tok.Char
	}
	for i := range chars {
		t.runContextCheck(NewContextParams(chars, i))
	}
	return t.bus.Dispatch(t, EventUpdateContextsRanges, UpdateContextsRangesPayload{Contexts: t.checkers})
}

// dispatchMutation dispatches name/payload on the bus, routing the
// per-call silent flag through the bus's own silent-mode override so
// EventBus.SetSilent stays the single mechanism controlling whether a
// dispatch fires.
func (t *Tokenizer) dispatchMutation(name EventName, payload any, silent bool) error {
	if silent {
		t.bus.SetSilent(true)
		defer t.bus.SetSilent(false)
	}
	return t.bus.Dispatch(t, name, payload)
}

// InsertToken splice-inserts tokens at index i.
func (t *Tokenizer) InsertToken(tokens []*Token, i int, silent bool) error {
	for _, tok := range tokens {
		if tok == nil {
			return opErrorf("insertToken", "tokens must all be non-nil")
		}
	}
	if i < 0 || i > len(t.tokens) {
		return opErrorf("insertToken", "index %d out of bounds [0,%d]", i, len(t.tokens))
	}
	cloned := make([]*Token, len(tokens))
	for j, tok := range tokens {
		cloned[j] = tok.clone()
	}
	t.tokens = spliceInsert(t.tokens, i, cloned)
	return t.dispatchMutation(EventInsertToken, InsertTokenPayload{Index: i, Tokens: cloned}, silent)
}

// RemoveToken splice-removes the token at index i.
func (t *Tokenizer) RemoveToken(i int, silent bool) error {
	if i < 0 || i >= len(t.tokens) {
		return opErrorf("removeToken", "index %d out of bounds [0,%d)", i, len(t.tokens))
	}
	t.tokens = append(t.tokens[:i:i], t.tokens[i+1:]...)
	return t.dispatchMutation(EventRemoveToken, RemoveTokenPayload{Index: i}, silent)
}

// RemoveRange splice-removes [start, start+offset). offset==nil removes to
// the end of the vector.
func (t *Tokenizer) RemoveRange(start int, offset *int, silent bool) error {
	end, err := resolveRangeEnd("removeRange", start, offset, len(t.tokens))
	if err != nil {
		return err
	}
	t.tokens = append(t.tokens[:start:start], t.tokens[end:]...)
	return t.dispatchMutation(EventRemoveRange, RemoveRangePayload{Start: start, Offset: offset}, silent)
}

// ReplaceToken replaces the token at index i with tok.
func (t *Tokenizer) ReplaceToken(i int, tok *Token, silent bool) error {
	if tok == nil {
		return opErrorf("replaceToken", "token must not be nil")
	}
	if i < 0 || i >= len(t.tokens) {
		return opErrorf("replaceToken", "index %d out of bounds [0,%d)", i, len(t.tokens))
	}
	cloned := tok.clone()
	t.tokens[i] = cloned
	return t.dispatchMutation(EventReplaceToken, ReplaceTokenPayload{Index: i, Token: cloned}, silent)
}

// ReplaceRange replaces [start, start+offset) with toks. offset==nil
// replaces through the end of the vector.
func (t *Tokenizer) ReplaceRange(start int, offset *int, toks []*Token, silent bool) error {
	end, err := resolveRangeEnd("replaceRange", start, offset, len(t.tokens))
	if err != nil {
		return err
	}
	for _, tok := range toks {
		if tok == nil {
			return opErrorf("replaceRange", "replacement tokens must all be non-nil")
		}
	}
	cloned := make([]*Token, len(toks))
	for i, tok := range toks {
		cloned[i] = tok.clone()
	}
	tail := append([]*Token(nil), t.tokens[end:]...)
	t.tokens = append(t.tokens[:start:start], cloned...)
	t.tokens = append(t.tokens, tail...)
	return t.dispatchMutation(EventReplaceRange, ReplaceRangePayload{Start: start, Offset: offset, Tokens: cloned}, silent)
}

func resolveRangeEnd(op string, start int, offset *int, n int) (int, error) {
	if start < 0 || start > n {
		return 0, opErrorf(op, "start %d out of bounds [0,%d]", start, n)
	}
	end := n
	if offset != nil {
		end = start + *offset
	}
	if end < start || end > n {
		return 0, opErrorf(op, "range [%d,%d) out of bounds [0,%d]", start, end, n)
	}
	return end, nil
}

func spliceInsert(tokens []*Token, i int, ins []*Token) []*Token {
	out := make([]*Token, 0, len(tokens)+len(ins))
	out = append(out, tokens[:i]...)
	out = append(out, ins...)
	out = append(out, tokens[i:]...)
	return out
}

// RUDKind identifies the kind of edit a RUDOp performs, for use with
// ComposeRUD.
type RUDKind int

const (
	RUDInsertToken RUDKind = iota
	RUDRemoveToken
	RUDRemoveRange
	RUDReplaceToken
	RUDReplaceRange
)

// RUDOp is one call bundled into a ComposeRUD batch.
type RUDOp struct {
	Kind   RUDKind
	Index  int
	Offset *int
	Token  *Token
	Tokens []*Token
}

// RUDResult records the outcome of one RUDOp within a ComposeRUD batch.
type RUDResult struct {
	Op  RUDOp
	Err error
}

// ComposeRUD runs every op in silent mode, then — unless every op
// failed — dispatches a single EventComposeRUD event carrying only the
// successful results. A partial success is not itself a failure.
func (t *Tokenizer) ComposeRUD(ops []RUDOp) ([]RUDResult, error) {
	results := make([]RUDResult, 0, len(ops))
	succeeded := make([]RUDResult, 0, len(ops))
	for _, op := range ops {
		err := t.runRUDOp(op)
		res := RUDResult{Op: op, Err: err}
		results = append(results, res)
		if err == nil {
			succeeded = append(succeeded, res)
		}
	}
	if len(succeeded) == 0 && len(ops) > 0 {
		return results, opErrorf("composeRUD", "all %d operations failed", len(ops))
	}
	if err := t.bus.Dispatch(t, EventComposeRUD, ComposeRUDPayload{Results: succeeded}); err != nil {
		return results, err
	}
	return results, nil
}

func (t *Tokenizer) runRUDOp(op RUDOp) error {
	switch op.Kind {
	case RUDInsertToken:
		return t.InsertToken(op.Tokens, op.Index, true)
	case RUDRemoveToken:
		return t.RemoveToken(op.Index, true)
	case RUDRemoveRange:
		return t.RemoveRange(op.Index, op.Offset, true)
	case RUDReplaceToken:
		return t.ReplaceToken(op.Index, op.Token, true)
	case RUDReplaceRange:
		return t.ReplaceRange(op.Index, op.Offset, op.Tokens, true)
	default:
		return opErrorf("composeRUD", "unknown op kind %d", op.Kind)
	}
}
