package query

import (
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// featureKey identifies one GSUB feature for one script, the granularity
// Supports/AddSingle/AddLigature operate at.
type featureKey struct {
	script language.Script
	tag    Tag
}

// ligatureEntry is one row of a ligature feature table: the input glyph
// sequence (length >= 2) that collapses to out.
type ligatureEntry struct {
	input []GlyphIndex
	out   GlyphIndex
}

// SFNTQuery is a concrete FeatureQuery/GlyphResolver backed by a parsed
// golang.org/x/image/font/sfnt.Font for cmap lookups, and an in-memory
// feature table populated by FeatureTableBuilder for GSUB lookups — a
// stand-in for a full binary GSUB decoder, following
// internal/fontload.ParseOpenTypeFont's sfnt.Parse usage and
// otquery.GlyphIndex's cmap-lookup role.
type SFNTQuery struct {
	font *sfnt.Font

	mu       sync.Mutex // guards buf; sfnt.Font lookups are not concurrency-safe across a shared Buffer
	buf      sfnt.Buffer
	supports map[featureKey]bool
	singles  map[featureKey]map[GlyphIndex]GlyphIndex
	ligas    map[featureKey][]ligatureEntry
}

// NewSFNTQuery wraps a parsed font. font may be nil, in which case
// CharToGlyphIndex always returns NotDef — used by tests and the CLI's
// no-font fallback.
func NewSFNTQuery(font *sfnt.Font) *SFNTQuery {
	return &SFNTQuery{
		font:     font,
		supports: make(map[featureKey]bool),
		singles:  make(map[featureKey]map[GlyphIndex]GlyphIndex),
		ligas:    make(map[featureKey][]ligatureEntry),
	}
}

// CharToGlyphIndex implements GlyphResolver by resolving r through the
// font's cmap. Returns NotDef if no font is attached or r is unmapped.
func (q *SFNTQuery) CharToGlyphIndex(r rune) GlyphIndex {
	if q.font == nil {
		return NotDef
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	gid, err := q.font.GlyphIndex(&q.buf, r)
	if err != nil {
		tracer().Debugf("GlyphIndex(%q): %v", r, err)
		return NotDef
	}
	return GlyphIndex(gid)
}

// Supports implements FeatureQuery.
func (q *SFNTQuery) Supports(sel Selector) bool {
	if sel.Tag == 0 {
		for k := range q.supports {
			if k.script == sel.Script {
				return true
			}
		}
		return false
	}
	return q.supports[featureKey{sel.Script, sel.Tag}]
}

// Lookup implements FeatureQuery, consulting whichever table
// FeatureTableBuilder populated for req.Tag/req.Script — ligature entries
// take priority over single substitutions when both are registered, since
// a ligature match consumes more input and must be tried first (mirrors
// GSUB's own longest-match-first lookup ordering).
func (q *SFNTQuery) Lookup(req LookupRequest) (Substitution, bool) {
	key := featureKey{req.Script, req.Tag}
	if entries, ok := q.ligas[key]; ok {
		if sub, ok := matchLigature(entries, req.Glyphs, req.Index); ok {
			return sub, true
		}
	}
	if table, ok := q.singles[key]; ok {
		if req.Index < 0 || req.Index >= len(req.Glyphs) {
			return Substitution{}, false
		}
		if out, ok := table[req.Glyphs[req.Index]]; ok {
			return Substitution{Kind: SubstitutionSingle, Glyph: out, Length: 1}, true
		}
	}
	return Substitution{}, false
}

func matchLigature(entries []ligatureEntry, glyphs []GlyphIndex, index int) (Substitution, bool) {
	var best *ligatureEntry
	for i := range entries {
		e := &entries[i]
		if index+len(e.input) > len(glyphs) {
			continue
		}
		match := true
		for j, want := range e.input {
			if glyphs[index+j] != want {
				match = false
				break
			}
		}
		if match && (best == nil || len(e.input) > len(best.input)) {
			best = e
		}
	}
	if best == nil {
		return Substitution{}, false
	}
	return Substitution{Kind: SubstitutionLigature, Glyph: best.out, Length: len(best.input)}, true
}

// FeatureTableBuilder populates an SFNTQuery's in-memory GSUB stand-in,
// playing the role a table parser plays when decoding a real GSUB blob —
// here the caller (typically a test) supplies the substitutions directly.
type FeatureTableBuilder struct {
	q *SFNTQuery
}

// NewFeatureTableBuilder returns a builder writing into q.
func NewFeatureTableBuilder(q *SFNTQuery) *FeatureTableBuilder {
	return &FeatureTableBuilder{q: q}
}

// AddSingle registers a 1→1 substitution for tag/script: "from" maps to
// "to" whenever this feature is looked up.
func (b *FeatureTableBuilder) AddSingle(sel Selector, from, to GlyphIndex) *FeatureTableBuilder {
	key := featureKey{sel.Script, sel.Tag}
	b.q.supports[key] = true
	table, ok := b.q.singles[key]
	if !ok {
		table = make(map[GlyphIndex]GlyphIndex)
		b.q.singles[key] = table
	}
	table[from] = to
	return b
}

// AddLigature registers an n→1 substitution for tag/script: the glyph
// sequence "from" (len >= 2) collapses to "to".
func (b *FeatureTableBuilder) AddLigature(sel Selector, from []GlyphIndex, to GlyphIndex) *FeatureTableBuilder {
	assert(len(from) >= 2, "AddLigature requires at least two input glyphs")
	key := featureKey{sel.Script, sel.Tag}
	b.q.supports[key] = true
	input := make([]GlyphIndex, len(from))
	copy(input, from)
	b.q.ligas[key] = append(b.q.ligas[key], ligatureEntry{input: input, out: to})
	return b
}
