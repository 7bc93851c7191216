package latin

import (
	"github.com/npillmayer/otshaper/query"
	"github.com/npillmayer/otshaper/tokenizer"
	"golang.org/x/text/language"
)

// Shaper applies the liga feature to closed latinWord ranges. It shares
// the ligature-walk shape with arabic.Shaper's rlig pass, but performs no
// joining classification.
type Shaper struct {
	Script language.Script
	query  query.FeatureQuery
}

// New returns a Shaper querying q for liga lookups; script is normally
// language.MustParseScript("Latn").
func New(script language.Script, q query.FeatureQuery) *Shaper {
	return &Shaper{Script: script, query: q}
}

func glyphOf(tok *tokenizer.Token) (query.GlyphIndex, bool) {
	v, ok := tok.State(stateGlyphIndex)
	if !ok {
		return 0, false
	}
	gid, ok := v.(query.GlyphIndex)
	return gid, ok
}

// ApplyLigatures walks rng left to right, replacing the longest matching
// run of glyphs at each position with its liga substitute and marking the
// remaining matched tokens deleted, identically to arabic.Shaper's rlig
// walk but without any joining-type filtering.
func (s *Shaper) ApplyLigatures(tok *tokenizer.Tokenizer, rng tokenizer.ContextRange) error {
	toks := tok.GetRangeTokens(rng)
	glyphs := make([]query.GlyphIndex, len(toks))
	for i, t := range toks {
		gid, ok := glyphOf(t)
		if !ok {
			return opErrorf("applyLigatures", "glyphIndex modifier not registered: token %q has no glyphIndex state", t.Char)
		}
		glyphs[i] = gid
	}

	tag := query.T("liga")
	for i := 0; i < len(toks); {
		sub, ok := s.query.Lookup(query.LookupRequest{
			Script: s.Script,
			Tag:    tag,
			Glyphs: glyphs,
			Index:  i,
		})
		if !ok || sub.Kind != query.SubstitutionLigature {
			i++
			continue
		}
		toks[i].SetState(stateGlyphIndex, sub.Glyph)
		for k := 1; k < sub.Length; k++ {
			toks[i+k].SetDeleted(true)
		}
		i += sub.Length
	}
	return nil
}
