/*
Package latin performs longest-match left-to-right liga substitution over a
closed latinWord range, with no joining classification — the same "no
script-specific classification, just feature application" role
otshape/otcore.Shaper plays for Latin-ish runs.
*/
package latin

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper.latin'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.latin")
}

const stateGlyphIndex = "glyphIndex"
