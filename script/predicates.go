package script

import (
	"github.com/npillmayer/otshaper/tokenizer"
	"golang.org/x/text/unicode/runenames"
)

// LatinWordStart reports whether a "latinWord" context opens at params:
// the current item is Latin and the previous one (if any) is not.
func LatinWordStart(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	if !ok || !IsLatin(cur) {
		return false
	}
	prev, ok := params.Get(-1)
	return !ok || !IsLatin(prev)
}

// LatinWordEnd reports whether an open "latinWord" context closes at
// params: the current item is Latin and the next one (if any) is not.
func LatinWordEnd(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	if !ok || !IsLatin(cur) {
		return false
	}
	next, ok := params.Get(1)
	return !ok || !IsLatin(next)
}

// ArabicWordStart reports whether an "arabicWord" context opens at
// params, analogous to LatinWordStart.
func ArabicWordStart(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	if !ok || !IsArabic(cur) {
		return false
	}
	prev, ok := params.Get(-1)
	return !ok || !IsArabic(prev)
}

// ArabicWordEnd reports whether an open "arabicWord" context closes at
// params, analogous to LatinWordEnd.
func ArabicWordEnd(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	if !ok || !IsArabic(cur) {
		return false
	}
	next, ok := params.Get(1)
	return !ok || !IsArabic(next)
}

// ArabicSentenceStart reports whether an "arabicSentence" context opens
// at params. The tokenizer only calls CheckStart while no arabicSentence
// range is already open, so this predicate only needs to test "current
// is Arabic".
func ArabicSentenceStart(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	return ok && IsArabic(cur)
}

// ArabicSentenceEnd reports whether an open "arabicSentence" context
// closes at params: at a hard sentence terminator, at end-of-text, or
// once no further Arabic content follows before non-neutral, non-Arabic
// content (or end-of-text) is reached.
//
// Because a range can only ever open on an Arabic code point (see
// ArabicSentenceStart), any open range already satisfies "contains at
// least one Arabic character" the moment it opens, needing no extra
// bookkeeping here.
//
// This predicate decides ambiguous trailing content by looking ahead
// through ContextParams.Lookahead (still a pure function of one
// ContextParams snapshot): whitespace and non-terminal punctuation
// interior to a run are skipped over — keeping the range open — only
// when more Arabic content follows before the next non-neutral
// character; a hard terminator, end-of-text, or an intervening
// Latin/other non-Arabic run all close the range, excluding that
// intervening content (e.g. "Hello مرحبا world" yields one
// arabicSentence range that does not swallow "Hello" or "world").
func ArabicSentenceEnd(params tokenizer.ContextParams) bool {
	cur, ok := params.Current()
	if !ok {
		return true
	}
	if IsTerminalPunctuation(cur) {
		tracer().Debugf("arabicSentence closes on terminator %s", runenames.Name(cur))
		return true
	}
	if IsArabic(cur) {
		if params.Index() == params.Len()-1 {
			return true
		}
		next, ok := params.Get(1)
		if !ok {
			return true
		}
		if IsArabic(next) {
			return false
		}
		if isSkippableNeutral(next) {
			following, found := nextNonSkippable(params)
			if !found {
				return true
			}
			return !IsArabic(following)
		}
		return true
	}
	if isSkippableNeutral(cur) {
		following, found := nextNonSkippable(params)
		if !found {
			return true
		}
		return !IsArabic(following)
	}
	return true
}

// nextNonSkippable scans params.Lookahead for the first code point that
// is not script-neutral (see isSkippableNeutral), returning it along with
// whether one was found before the end of the stream.
func nextNonSkippable(params tokenizer.ContextParams) (rune, bool) {
	for _, r := range params.Lookahead() {
		if !isSkippableNeutral(r) {
			return r, true
		}
	}
	return 0, false
}

// RegisterAll registers all three predicate pairs on tok under their
// canonical names.
func RegisterAll(tok *tokenizer.Tokenizer) error {
	if err := tok.RegisterContextChecker(NameLatinWord, LatinWordStart, LatinWordEnd); err != nil {
		return err
	}
	if err := tok.RegisterContextChecker(NameArabicWord, ArabicWordStart, ArabicWordEnd); err != nil {
		return err
	}
	if err := tok.RegisterContextChecker(NameArabicSentence, ArabicSentenceStart, ArabicSentenceEnd); err != nil {
		return err
	}
	tracer().Debugf("registered latinWord/arabicWord/arabicSentence context checkers")
	return nil
}
