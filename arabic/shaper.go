package arabic

import (
	"github.com/npillmayer/otshaper/query"
	"github.com/npillmayer/otshaper/tokenizer"
	"golang.org/x/text/language"
)

// Shaper applies Arabic positional forms and required ligatures to closed
// arabicWord ranges.
type Shaper struct {
	Script   language.Script
	query    query.FeatureQuery
	resolver query.GlyphResolver
}

// New returns a Shaper querying q for GSUB lookups; script is normally
// language.MustParseScript("Arab").
func New(script language.Script, q query.FeatureQuery) *Shaper {
	return &Shaper{Script: script, query: q}
}

// ClassifyWord returns the joining type of every character in a
// (typically arabicWord-ranged) rune slice, without requiring a
// Tokenizer or glyphIndex modifier — letting callers and tests inspect
// joining classification directly, the same arabicIsWord/getJoiningType
// split harfbuzz/otarabic uses.
func (s *Shaper) ClassifyWord(word []rune) []JoiningType {
	return ClassifyAll(word)
}

func glyphOf(tok *tokenizer.Token) (query.GlyphIndex, bool) {
	v, ok := tok.State(stateGlyphIndex)
	if !ok {
		return 0, false
	}
	gid, ok := v.(query.GlyphIndex)
	return gid, ok
}

// requireGlyphIndex panics if any token in toks has not yet had its
// glyphIndex modifier seeded; the modifier must already be registered
// before Arabic shaping runs, and attempting to shape without it is
// programmer misuse, not a recoverable condition.
func requireGlyphIndex(toks []*tokenizer.Token) {
	for _, tok := range toks {
		_, ok := tok.State(stateGlyphIndex)
		assert(ok, "glyphIndex modifier not registered")
	}
}

// ApplyPositionalForms assigns and substitutes positional forms
// (isol/init/medi/fina) for every dual- or right-joining token in rng.
// Every token's "form" state is set, then FeatureQuery is queried for a
// Single substitution under the corresponding feature tag, and the
// resulting glyph (the substitute, or the unchanged glyph when no
// substitution applies) is written back via the "glyphIndex" state, so
// glyphIndex stays each token's active state.
func (s *Shaper) ApplyPositionalForms(tok *tokenizer.Tokenizer, rng tokenizer.ContextRange) error {
	toks := tok.GetRangeTokens(rng)
	requireGlyphIndex(toks)
	chars := make([]rune, len(toks))
	for i, t := range toks {
		chars[i] = t.Char
	}
	types := ClassifyAll(chars)
	forms := AssignForms(types)

	for i, form := range forms {
		t := toks[i]
		gid, hasGlyph := glyphOf(t)
		t.SetState(stateForm, form)
		if !hasGlyph {
			continue
		}
		if form != FormNone {
			sub, ok := s.query.Lookup(query.LookupRequest{
				Script: s.Script,
				Tag:    query.T(form.Tag()),
				Glyphs: []query.GlyphIndex{gid},
				Index:  0,
			})
			if ok && sub.Kind == query.SubstitutionSingle {
				gid = sub.Glyph
			}
		}
		t.SetState(stateGlyphIndex, gid)
	}
	return nil
}

// ApplyRequiredLigatures walks rng left to right applying the rlig
// feature: at each non-transparent position it asks FeatureQuery for a
// ligature match against the current and following non-transparent
// glyphs (transparent tokens never break a match and are left untouched),
// and on a match of length k replaces the first token's glyphIndex with
// the ligature glyph and marks the remaining k-1 matched tokens deleted.
func (s *Shaper) ApplyRequiredLigatures(tok *tokenizer.Tokenizer, rng tokenizer.ContextRange) error {
	toks := tok.GetRangeTokens(rng)
	requireGlyphIndex(toks)

	type chainEntry struct {
		tokIndex int
		glyph    query.GlyphIndex
	}
	var chain []chainEntry
	for i, t := range toks {
		if Classify(t.Char) == JoinT {
			continue
		}
		gid, ok := glyphOf(t)
		if !ok {
			continue
		}
		chain = append(chain, chainEntry{tokIndex: i, glyph: gid})
	}
	glyphs := make([]query.GlyphIndex, len(chain))
	for i, e := range chain {
		glyphs[i] = e.glyph
	}

	rligTag := query.T("rlig")
	for ci := 0; ci < len(chain); {
		sub, ok := s.query.Lookup(query.LookupRequest{
			Script: s.Script,
			Tag:    rligTag,
			Glyphs: glyphs,
			Index:  ci,
		})
		if !ok || sub.Kind != query.SubstitutionLigature {
			ci++
			continue
		}
		first := toks[chain[ci].tokIndex]
		first.SetState(stateGlyphIndex, sub.Glyph)
		for k := 1; k < sub.Length && ci+k < len(chain); k++ {
			toks[chain[ci+k].tokIndex].SetDeleted(true)
		}
		ci += sub.Length
	}
	return nil
}
