package arabic_test

import (
	"testing"

	"github.com/npillmayer/otshaper/arabic"
)

func TestClassifyKnownCodePoints(t *testing.T) {
	cases := []struct {
		r    rune
		name string
		want arabic.JoiningType
	}{
		{0x0628, "BEH", arabic.JoinD},
		{0x0627, "ALEF", arabic.JoinR},
		{0x0633, "SEEN", arabic.JoinD},
		{0x0640, "TATWEEL", arabic.JoinC},
		{0x200D, "ZWJ", arabic.JoinC},
		{0x200C, "ZWNJ", arabic.JoinU},
		{0x064B, "FATHATAN", arabic.JoinT},
		{'a', "latin a", arabic.JoinU},
		{'5', "digit", arabic.JoinU},
		{' ', "space", arabic.JoinU},
	}
	for _, c := range cases {
		if got := arabic.Classify(c.r); got != c.want {
			t.Errorf("Classify(%s U+%04X) = %s, want %s", c.name, c.r, got, c.want)
		}
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	chars := []rune("باس")
	got := arabic.ClassifyAll(chars)
	if len(got) != len(chars) {
		t.Fatalf("ClassifyAll returned %d types for %d chars", len(got), len(chars))
	}
}
