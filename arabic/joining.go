package arabic

import "unicode"

// JoiningType classifies an Arabic/Syriac code point by how it connects to
// its neighbours, per Unicode's ArabicShaping.txt Joining_Type property.
type JoiningType uint8

const (
	// JoinU is non-joining: never connects to either neighbour.
	JoinU JoiningType = iota
	// JoinR is right-joining: connects to a preceding letter only.
	JoinR
	// JoinL is left-joining: connects to a following letter only. No
	// Arabic-block code point carries this type in the table below (it
	// exists for completeness and for scripts outside this module's
	// scope, per DESIGN.md).
	JoinL
	// JoinD is dual-joining: connects on both sides.
	JoinD
	// JoinC is join-causing: forces its neighbours to join through it
	// without itself taking a positional form (tatweel, ZWJ).
	JoinC
	// JoinT is transparent: invisible to joining, carried unchanged
	// between its neighbours (combining marks).
	JoinT
)

func (t JoiningType) String() string {
	switch t {
	case JoinU:
		return "U"
	case JoinR:
		return "R"
	case JoinL:
		return "L"
	case JoinD:
		return "D"
	case JoinC:
		return "C"
	case JoinT:
		return "T"
	default:
		return "?"
	}
}

// rightJoining lists the Arabic/Syriac letters whose Joining_Type is R
// (they connect to a preceding letter but never to a following one) — the
// same set otshape/otarabic/otarabic.go's rightJoiningRunes covers.
var rightJoining = map[rune]bool{
	0x0622: true, 0x0623: true, 0x0624: true, 0x0625: true, 0x0627: true, 0x0629: true,
	0x062F: true, 0x0630: true, 0x0631: true, 0x0632: true, 0x0648: true,
	0x0671: true, 0x0672: true, 0x0673: true, 0x0675: true, 0x0676: true, 0x0677: true,
	0x0688: true, 0x0689: true, 0x0691: true,
	0x06C0: true, 0x06C3: true, 0x06C4: true, 0x06C5: true, 0x06C6: true,
	0x06C7: true, 0x06C8: true, 0x06C9: true, 0x06CA: true, 0x06CB: true, 0x06CD: true,
	0x0710: true, 0x0715: true, 0x0716: true, 0x0718: true, 0x0719: true, 0x071A: true,
	0x071D: true, 0x072A: true, 0x072B: true, 0x072C: true, 0x072D: true, 0x072E: true, 0x072F: true,
	// Arabic presentation forms-A/-B code points are not listed here; being
	// Arabic letters, Classify reports them as dual-joining.
}

// joinCausing are code points that force joining through themselves
// without taking a positional form of their own: ZERO WIDTH JOINER and
// TATWEEL (U+0640), the Arabic letter-elongation character.
var joinCausing = map[rune]bool{
	0x200D: true, // ZERO WIDTH JOINER
	0x0640: true, // ARABIC TATWEEL
}

// Classify returns r's Joining_Type. Combining marks are Transparent; ZWJ
// and tatweel are Join_Causing; ZWNJ is explicitly Non_Joining; right-
// joining letters are looked up in the rightJoining table; every other
// Arabic or Syriac letter is Dual_Joining; everything else (digits,
// punctuation, Latin, whitespace) is Non_Joining.
func Classify(r rune) JoiningType {
	switch {
	case r == 0x200C: // ZERO WIDTH NON-JOINER
		return JoinU
	case joinCausing[r]:
		return JoinC
	case unicode.Is(unicode.M, r):
		return JoinT
	case rightJoining[r]:
		return JoinR
	case isArabicOrSyriacLetter(r):
		return JoinD
	default:
		return JoinU
	}
}

func isArabicOrSyriacLetter(r rune) bool {
	return unicode.IsLetter(r) && (unicode.Is(unicode.Arabic, r) || unicode.Is(unicode.Syriac, r))
}

// ClassifyAll classifies every rune in chars, preserving order.
func ClassifyAll(chars []rune) []JoiningType {
	types := make([]JoiningType, len(chars))
	for i, r := range chars {
		types[i] = Classify(r)
	}
	return types
}
