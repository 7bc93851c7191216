/*
Package arabic performs Arabic joining classification, positional form
assignment over a closed arabicWord range, and required ligature (rlig)
substitution, on top of the tokenizer and query packages.

The joining type enum and classification follow
harfbuzz/otarabic/joining_support.go; positional form assignment follows
harfbuzz/otarabic/arabic.go, simplified to a four-form
nearest-non-transparent-neighbour rule (see DESIGN.md's Open Question
decision on the dropped fin2/fin3/med2 Syriac forms).
*/
package arabic

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper.arabic'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.arabic")
}

func assert(condition bool, msg string) {
	if !condition {
		panic("arabic: " + msg)
	}
}

// Modifier state keys this package reads and writes on tokens.
const (
	stateGlyphIndex = "glyphIndex"
	stateForm       = "form"
)
