package query

import "golang.org/x/text/language"

// Tag is a four-character OpenType feature/script tag packed into a
// uint32, e.g. "liga", "rlig", "isol", the same packing ot.Tag/ot.T use,
// reused here without the binary table decoder they tie into.
type Tag uint32

// T returns a Tag from a (4-letter) string, silently padding or truncating
// to four bytes, mirroring ot.T.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3]))
}

func (t Tag) String() string {
	b := [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	return string(b[:])
}

// GlyphIndex is a glyph identifier as seeded by a GlyphResolver and carried
// through the shaping pipeline in a token's "glyphIndex" modifier state.
type GlyphIndex uint32

// NotDef is the reserved ".notdef" glyph returned for characters with no
// mapping in the font's cmap.
const NotDef GlyphIndex = 0

// Selector names a (script, feature tag) pair a shaper wants to query GSUB
// for.
type Selector struct {
	Script language.Script
	Tag    Tag
}

// SubstitutionKind distinguishes the two substitution shapes this module
// needs: Single (1→1, used for positional forms) and Ligature (n→1, used
// for rlig/liga).
type SubstitutionKind int

const (
	// SubstitutionSingle replaces exactly one glyph with another, the
	// same shape as GSubSingleFmt2Payload.SubstituteGlyphIDs.
	SubstitutionSingle SubstitutionKind = iota
	// SubstitutionLigature replaces a run of Length glyphs with one, the
	// same shape as GSubLigatureFmt1Payload/GSubLigatureRule.
	SubstitutionLigature
)

// Substitution is what a FeatureQuery.Lookup returns when a feature applies
// at a given position: the glyph to substitute in, and how many input
// glyphs it consumes (1 for Single, >=1 for Ligature).
type Substitution struct {
	Kind   SubstitutionKind
	Glyph  GlyphIndex
	Length int
}

// LookupRequest is the input to FeatureQuery.Lookup: "does tag apply to
// glyphs starting at index, under script, and if so with what
// substitution?"
type LookupRequest struct {
	Script language.Script
	Tag    Tag
	Glyphs []GlyphIndex
	Index  int
}

// FeatureQuery is the GSUB oracle the shaping core consumes; implementations
// decode — or synthesize, as SFNTQuery does — a font's substitution tables.
// Never implemented by the core itself.
type FeatureQuery interface {
	// Supports reports whether the font's GSUB declares sel.Script and,
	// if sel.Tag is non-zero, that feature tag for that script.
	Supports(sel Selector) bool
	// Lookup returns the substitution applying to req.Glyphs starting at
	// req.Index under req.Tag, or ok=false if none applies.
	Lookup(req LookupRequest) (Substitution, bool)
}

// GlyphResolver maps characters to glyph ids, used to seed the glyphIndex
// modifier.
type GlyphResolver interface {
	CharToGlyphIndex(r rune) GlyphIndex
}
