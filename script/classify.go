package script

import "unicode"

// arabicBlocks spans the Arabic, Arabic Supplement, Arabic Extended-A and
// Arabic Presentation Forms-A/-B blocks.
var arabicBlocks = &unicode.RangeTable{R16: []unicode.Range16{
	{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
	{Lo: 0x0750, Hi: 0x077F, Stride: 1},
	{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
	{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
	{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
}}

// IsArabic reports whether r has Unicode's Script=Arabic property (which
// includes the Arabic-Indic digits) or lies anywhere in the Arabic,
// Arabic Supplement, Arabic Extended-A and Arabic Presentation Forms A/B
// blocks — the latter also covers Common/Inherited code points used
// inside Arabic runs, such as tatweel, the harakat, and the Arabic comma
// and question mark.
func IsArabic(r rune) bool {
	return unicode.Is(unicode.Arabic, r) || unicode.Is(arabicBlocks, r)
}

// IsLatin reports whether r belongs to the Latin script or is an ASCII
// digit.
func IsLatin(r rune) bool {
	return unicode.Is(unicode.Latin, r) || (r >= '0' && r <= '9')
}

// IsWhitespace reports whether r is Unicode whitespace.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// IsPunctuation reports whether r is in a Unicode general category P*.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r)
}

// arabicSentenceTerminators holds the Arabic-script equivalents of the
// Latin terminal punctuation ".!?": the Arabic question mark (U+061F) and
// the Arabic full stop used for Perso-Arabic scripts such as Urdu
// (U+06D4).
var arabicSentenceTerminators = map[rune]bool{
	0x061F: true, // ARABIC QUESTION MARK
	0x06D4: true, // ARABIC FULL STOP
}

// IsTerminalPunctuation reports whether r is a sentence terminator: '.',
// '!', '?' or one of their Arabic-script equivalents. Unlike bare
// whitespace, a terminator always breaks a sentence, regardless of what
// follows it.
func IsTerminalPunctuation(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return arabicSentenceTerminators[r]
}

// IsSentenceBreak reports whether r is whitespace or terminal punctuation
// ('.', '!', '?') in either the Latin or Arabic repertoire.
func IsSentenceBreak(r rune) bool {
	return IsWhitespace(r) || IsTerminalPunctuation(r)
}

// IsNeutral reports whether r is whitespace or punctuation that is
// script-neutral — i.e. it can appear inside an open context range
// without belonging to either Latin or Arabic.
func IsNeutral(r rune) bool {
	return IsWhitespace(r) || IsPunctuation(r)
}

// isSkippableNeutral reports whether r is script-neutral content that an
// arabicSentence range may run through without closing — whitespace and
// non-terminal punctuation, but not a hard sentence terminator.
func isSkippableNeutral(r rune) bool {
	return IsNeutral(r) && !IsTerminalPunctuation(r)
}
