package tokenizer_test

import (
	"testing"
	"unicode"

	"github.com/npillmayer/otshaper/tokenizer"
)

func isLatin(r rune) bool {
	return unicode.Is(unicode.Latin, r) || (r >= '0' && r <= '9')
}

func registerLatinWord(t *testing.T, tok *tokenizer.Tokenizer) {
	t.Helper()
	start := func(p tokenizer.ContextParams) bool {
		cur, ok := p.Current()
		if !ok || !isLatin(cur) {
			return false
		}
		prev, ok := p.Get(-1)
		return !ok || !isLatin(prev)
	}
	end := func(p tokenizer.ContextParams) bool {
		cur, ok := p.Current()
		if !ok || !isLatin(cur) {
			return false
		}
		next, ok := p.Get(1)
		return !ok || !isLatin(next)
	}
	if err := tok.RegisterContextChecker("latinWord", start, end); err != nil {
		t.Fatalf("RegisterContextChecker: %v", err)
	}
}

func TestTokenizeProducesOneTokenPerCodePoint(t *testing.T) {
	tok := tokenizer.New()
	toks := tok.Tokenize("ab")
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}
	if toks[0].Char != 'a' || toks[1].Char != 'b' {
		t.Fatalf("unexpected token chars: %q %q", toks[0].Char, toks[1].Char)
	}
	if tok.GetText() != "ab" {
		t.Fatalf("GetText = %q, want %q", tok.GetText(), "ab")
	}
}

func TestLatinWordContextRanges(t *testing.T) {
	tok := tokenizer.New()
	registerLatinWord(t, tok)
	tok.Tokenize("Hello world")

	ranges, ok := tok.GetContextRanges("latinWord")
	if !ok {
		t.Fatal("expected latinWord context to be registered")
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 latinWord ranges, got %d: %+v", len(ranges), ranges)
	}
	if got := tok.RangeToText(ranges[0]); got != "Hello" {
		t.Fatalf("range[0] = %q, want %q", got, "Hello")
	}
	if got := tok.RangeToText(ranges[1]); got != "world" {
		t.Fatalf("range[1] = %q, want %q", got, "world")
	}
}

func TestContextParamsGet(t *testing.T) {
	chars := []rune("abc")
	for i := range chars {
		p := tokenizer.NewContextParams(chars, i)
		for o := -i; o <= len(chars)-1-i; o++ {
			got, ok := p.Get(o)
			if !ok {
				t.Fatalf("Get(%d) at index %d: expected ok", o, i)
			}
			if want := chars[i+o]; got != want {
				t.Fatalf("Get(%d) at index %d = %q, want %q", o, i, got, want)
			}
		}
		if _, ok := p.Get(len(chars) + 1); ok {
			t.Fatalf("Get far out of range should be absent")
		}
	}
}

func TestRegisterModifierWritesActiveState(t *testing.T) {
	tok := tokenizer.New()
	_, err := tok.RegisterModifier("upper", nil, func(token *tokenizer.Token, _ tokenizer.ContextParams) any {
		return unicode.ToUpper(token.Char)
	})
	if err != nil {
		t.Fatalf("RegisterModifier: %v", err)
	}
	toks := tok.Tokenize("ab")
	for i, want := range []rune{'A', 'B'} {
		v, ok := toks[i].State("upper")
		if !ok || v.(rune) != want {
			t.Fatalf("token %d state[upper] = %v, want %q", i, v, want)
		}
		if toks[i].ActiveState().Key != "upper" {
			t.Fatalf("token %d active state key = %q, want upper", i, toks[i].ActiveState().Key)
		}
	}
}

func TestInsertRemoveReplaceTriggerRecompute(t *testing.T) {
	tok := tokenizer.New()
	registerLatinWord(t, tok)
	tok.Tokenize("ab cd")

	updates := 0
	if _, err := tok.On(tokenizer.EventUpdateContextsRanges, func(_ *tokenizer.Tokenizer, _ any) error {
		updates++
		return nil
	}); err != nil {
		t.Fatalf("On: %v", err)
	}

	if err := tok.ReplaceToken(0, tokenizer.NewToken('X'), false); err != nil {
		t.Fatalf("ReplaceToken: %v", err)
	}
	if updates != 1 {
		t.Fatalf("expected 1 recompute after ReplaceToken, got %d", updates)
	}

	ranges, _ := tok.GetContextRanges("latinWord")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 latinWord ranges after replace, got %d", len(ranges))
	}

	if err := tok.InsertToken([]*tokenizer.Token{tokenizer.NewToken(' ')}, 2, false); err != nil {
		t.Fatalf("InsertToken: %v", err)
	}
	if updates != 2 {
		t.Fatalf("expected 2 recomputes after InsertToken, got %d", updates)
	}
	ranges, _ = tok.GetContextRanges("latinWord")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 latinWord ranges after insert, got %d", len(ranges))
	}

	if err := tok.RemoveToken(2, false); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if updates != 3 {
		t.Fatalf("expected 3 recomputes after RemoveToken, got %d", updates)
	}
	ranges, _ = tok.GetContextRanges("latinWord")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 latinWord ranges after remove, got %d", len(ranges))
	}
}

func TestSilentModeSkipsRecompute(t *testing.T) {
	tok := tokenizer.New()
	registerLatinWord(t, tok)
	tok.Tokenize("ab")

	updates := 0
	if _, err := tok.On(tokenizer.EventUpdateContextsRanges, func(_ *tokenizer.Tokenizer, _ any) error {
		updates++
		return nil
	}); err != nil {
		t.Fatalf("On: %v", err)
	}
	if err := tok.RemoveToken(0, true); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if updates != 0 {
		t.Fatalf("expected no recompute in silent mode, got %d", updates)
	}
}

func TestComposeRUDBatchesOneUpdateAndOneEvent(t *testing.T) {
	tok := tokenizer.New()
	tok.Tokenize("abc")

	updates := 0
	composed := 0
	if _, err := tok.On(tokenizer.EventUpdateContextsRanges, func(_ *tokenizer.Tokenizer, _ any) error {
		updates++
		return nil
	}); err != nil {
		t.Fatalf("On: %v", err)
	}
	if _, err := tok.On(tokenizer.EventComposeRUD, func(_ *tokenizer.Tokenizer, payload any) error {
		composed++
		p := payload.(tokenizer.ComposeRUDPayload)
		if len(p.Results) != 2 {
			t.Fatalf("expected 2 successful results, got %d", len(p.Results))
		}
		return nil
	}); err != nil {
		t.Fatalf("On: %v", err)
	}

	_, err := tok.ComposeRUD([]tokenizer.RUDOp{
		{Kind: tokenizer.RUDRemoveToken, Index: 0},
		{Kind: tokenizer.RUDInsertToken, Index: 0, Tokens: []*tokenizer.Token{tokenizer.NewToken('X')}},
	})
	if err != nil {
		t.Fatalf("ComposeRUD: %v", err)
	}
	if updates != 1 {
		t.Fatalf("expected exactly 1 recompute, got %d", updates)
	}
	if composed != 1 {
		t.Fatalf("expected exactly 1 composeRUD dispatch, got %d", composed)
	}
	if tok.Len() != 3 {
		t.Fatalf("expected 3 tokens after compose, got %d", tok.Len())
	}
}

func TestComposeRUDAllFailuresIsFailure(t *testing.T) {
	tok := tokenizer.New()
	tok.Tokenize("ab")

	_, err := tok.ComposeRUD([]tokenizer.RUDOp{
		{Kind: tokenizer.RUDRemoveToken, Index: 99},
		{Kind: tokenizer.RUDRemoveToken, Index: -1},
	})
	if err == nil {
		t.Fatal("expected error when every RUD op fails")
	}
}

func TestSoftFailuresAreStructuredAndContinuable(t *testing.T) {
	tok := tokenizer.New()
	tok.Tokenize("ab")

	err := tok.RemoveToken(10, false)
	if err == nil {
		t.Fatal("expected out-of-bounds removeToken to fail")
	}
	var opErr *tokenizer.OpError
	if !asOpError(err, &opErr) {
		t.Fatalf("expected *tokenizer.OpError, got %T", err)
	}
	if opErr.Op != "removeToken" {
		t.Fatalf("OpError.Op = %q, want removeToken", opErr.Op)
	}
	// Tokenizer must remain usable after a soft failure.
	if tok.Len() != 2 {
		t.Fatalf("expected tokenizer state untouched, Len = %d", tok.Len())
	}
}

func asOpError(err error, target **tokenizer.OpError) bool {
	oe, ok := err.(*tokenizer.OpError)
	if ok {
		*target = oe
	}
	return ok
}

func TestUnknownEventOnFails(t *testing.T) {
	tok := tokenizer.New()
	_, err := tok.On(tokenizer.EventName("bogus"), func(*tokenizer.Tokenizer, any) error { return nil })
	if err == nil {
		t.Fatal("expected On with unknown event name to fail")
	}
}

func TestRoundTripConsistencyAfterReplaceRange(t *testing.T) {
	tok := tokenizer.New()
	registerLatinWord(t, tok)
	tok.Tokenize("ab cd ef")

	repl := []*tokenizer.Token{tokenizer.NewToken('X'), tokenizer.NewToken('Y')}
	if err := tok.ReplaceRange(0, intPtr(2), repl, false); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	gotRanges, _ := tok.GetContextRanges("latinWord")

	// From-scratch recompute via a fresh tokenizer over the resulting text
	// must agree with the incrementally maintained ranges.
	fresh := tokenizer.New()
	registerLatinWord(t, fresh)
	fresh.Tokenize(tok.GetText())
	wantRanges, _ := fresh.GetContextRanges("latinWord")

	if len(gotRanges) != len(wantRanges) {
		t.Fatalf("range count mismatch: got %d want %d", len(gotRanges), len(wantRanges))
	}
	for i := range gotRanges {
		if gotRanges[i].StartIndex != wantRanges[i].StartIndex || gotRanges[i].EndOffset != wantRanges[i].EndOffset {
			t.Fatalf("range %d mismatch: got %+v want %+v", i, gotRanges[i], wantRanges[i])
		}
	}
}

func intPtr(i int) *int { return &i }
