package otshaper_test

import (
	"testing"

	otshaper "github.com/npillmayer/otshaper"
	"github.com/npillmayer/otshaper/query"
	"github.com/npillmayer/otshaper/script"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

type identityResolver struct{}

func (identityResolver) CharToGlyphIndex(r rune) query.GlyphIndex {
	return query.GlyphIndex(r)
}

var (
	latn = language.MustParseScript("Latn")
	arab = language.MustParseScript("Arab")
)

// --- Test Suite Preparation ------------------------------------------------

type BidiTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestBidiDriver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otshaper")
	defer teardown()
	suite.Run(t, new(BidiTestEnviron))
}

func (env *BidiTestEnviron) SetupSuite() {
	tracing.Select("otshaper").SetTraceLevel(tracing.LevelError)
}

// --- Tests -------------------------------------------------------------

func (env *BidiTestEnviron) TestFiLigatureScenario() {
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	fi := query.GlyphIndex(9000)
	b.AddLigature(query.Selector{Script: latn, Tag: query.T("liga")}, []query.GlyphIndex{'f', 'i'}, fi)

	shaper := otshaper.NewBidi(bidi.LeftToRight, identityResolver{}, q)
	shaper.ApplyFeatures([]otshaper.FeatureRequest{{Script: latn, Tags: []string{"liga"}}})

	glyphs := shaper.GetTextGlyphs("fi")
	env.Require().Len(glyphs, 1, "expected 1 glyph after ligature collapse")
	env.Equal(fi, glyphs[0].(query.GlyphIndex))
}

func (env *BidiTestEnviron) TestNoFeaturesIsIdentity() {
	q := query.NewSFNTQuery(nil)
	shaper := otshaper.NewBidi(bidi.LeftToRight, identityResolver{}, q)

	glyphs := shaper.GetTextGlyphs("ab")
	env.Require().Len(glyphs, 2)
	env.Equal(query.GlyphIndex('a'), glyphs[0].(query.GlyphIndex))
	env.Equal(query.GlyphIndex('b'), glyphs[1].(query.GlyphIndex))

	ranges, ok := shaper.ContextRanges(script.NameArabicWord)
	if ok {
		env.Empty(ranges, "expected no arabicWord ranges for \"ab\"")
	}
}

func (env *BidiTestEnviron) TestTatweelScenario() {
	// "بـس" — BEH, TATWEEL, SEEN.
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	b.AddSingle(query.Selector{Script: arab, Tag: query.T("init")}, query.GlyphIndex(0x0628), 3001)
	b.AddSingle(query.Selector{Script: arab, Tag: query.T("fina")}, query.GlyphIndex(0x0633), 3002)

	shaper := otshaper.NewBidi(bidi.RightToLeft, identityResolver{}, q)
	shaper.SetNormalize(false)
	shaper.ApplyFeatures([]otshaper.FeatureRequest{{Script: arab, Tags: []string{"isol", "init", "medi", "fina"}}})

	glyphs := shaper.GetTextGlyphs("بـس")
	env.Require().Len(glyphs, 3, "tatweel must not be deleted")
	env.Equal(query.GlyphIndex(3001), glyphs[0].(query.GlyphIndex), "BEH takes its initial form")
	env.Equal(query.GlyphIndex(3002), glyphs[2].(query.GlyphIndex), "SEEN takes its final form")
}

func (env *BidiTestEnviron) TestMixedScriptScenario() {
	q := query.NewSFNTQuery(nil)
	shaper := otshaper.NewBidi(bidi.LeftToRight, identityResolver{}, q)
	shaper.SetNormalize(false)

	text := "Hello مرحبا world"
	shaper.ProcessText(text)

	latinRanges, _ := shaper.ContextRanges(script.NameLatinWord)
	env.Len(latinRanges, 2)
	arabicRanges, _ := shaper.ContextRanges(script.NameArabicWord)
	env.Len(arabicRanges, 1)

	got := shaper.GetBidiText(text)
	want := "Hello " + reverseString("مرحبا") + " world"
	env.Equal(want, got)
}

func (env *BidiTestEnviron) TestProcessTextIsIdempotent() {
	q := query.NewSFNTQuery(nil)
	shaper := otshaper.NewBidi(bidi.LeftToRight, identityResolver{}, q)

	shaper.ProcessText("ab")
	shaper.ProcessText("ab")
	shaper.ProcessText("ab")
	env.Equal(1, shaper.TokenizeCount(), "repeated ProcessText with the same text must not retokenize")

	shaper.ProcessText("cd")
	env.Equal(2, shaper.TokenizeCount())
}

func (env *BidiTestEnviron) TestIdentityWhenPipelineEmpty() {
	// getBidiText's length in code points matches the input when no
	// shaping is registered.
	q := query.NewSFNTQuery(nil)
	shaper := otshaper.NewBidi(bidi.LeftToRight, identityResolver{}, q)

	for _, text := range []string{"hello world", "abc", ""} {
		got := shaper.GetBidiText(text)
		env.Equal(len([]rune(text)), len([]rune(got)), "text = %q", text)
	}
}

func (env *BidiTestEnviron) TestNewBidiPanicsOnNilResolver() {
	env.Panics(func() {
		otshaper.NewBidi(bidi.LeftToRight, nil, query.NewSFNTQuery(nil))
	})
}

func reverseString(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
