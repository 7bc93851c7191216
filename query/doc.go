/*
Package query defines the two external-collaborator contracts the shaping
core consumes instead of decoding OpenType tables itself — FeatureQuery and
GlyphResolver — plus SFNTQuery, a concrete adapter backed by
golang.org/x/image/font/sfnt and an in-memory feature table, so the rest of
this module is runnable end to end without a binary GSUB/GPOS decoder.
*/
package query

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper.query'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.query")
}

func assert(condition bool, msg string) {
	if !condition {
		panic("query: " + msg)
	}
}
