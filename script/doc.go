/*
Package script provides Unicode classification and the three
tokenizer.ContextChecker predicate pairs the shaping pipeline needs:
"latinWord", "arabicWord" and "arabicSentence".

Classification follows the split observed in harfbuzz/otarabic: stdlib
unicode.* range tables for script/category membership,
golang.org/x/text only for language/bidi/normalization concerns (see
DESIGN.md).
*/
package script

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper.script'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.script")
}

// Context names used when registering these predicates with a Tokenizer.
const (
	NameLatinWord      = "latinWord"
	NameArabicWord     = "arabicWord"
	NameArabicSentence = "arabicSentence"
)
