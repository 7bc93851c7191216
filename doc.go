/*
Package otshaper provides the Bidi driver that binds the tokenizer, script
predicates, and the arabic/latin shapers to a font, applying Arabic
presentation forms, Arabic required ligatures, Latin ligatures and Arabic
sentence reversal in a fixed order.

The orchestration pattern (candidate-engine selection, fixed pipeline
stages gated by requested feature tags) follows otshape/shape_api.go's
Shaper/ShapeRequest and otshape/otarabic/otarabic.go's CollectFeatures
ordering.
*/
package otshaper

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper'
func tracer() tracing.Trace {
	return tracing.Select("otshaper")
}

func assert(condition bool, msg string) {
	if !condition {
		panic("otshaper: " + msg)
	}
}
