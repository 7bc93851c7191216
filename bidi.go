package otshaper

import (
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/otshaper/arabic"
	"github.com/npillmayer/otshaper/latin"
	"github.com/npillmayer/otshaper/query"
	"github.com/npillmayer/otshaper/script"
	"github.com/npillmayer/otshaper/tokenizer"
)

var (
	arabicScript = language.MustParseScript("Arab")
	latinScript  = language.MustParseScript("Latn")
)

// arabicFormTags are the four GSUB feature tags the Arabic positional
// shaper applies; requesting any one of them for the Arabic script gates
// the whole positional-forms stage.
var arabicFormTags = []string{"isol", "init", "medi", "fina"}

// FeatureRequest asks the Bidi driver to apply a set of GSUB feature tags
// for one script.
type FeatureRequest struct {
	Script language.Script
	Tags   []string
}

// Bidi is the bidirectional shaping driver. It owns a Tokenizer with the
// three script context checkers pre-registered, and drives Arabic/Latin
// feature application in a fixed order.
type Bidi struct {
	baseDir  bidi.Direction
	resolver query.GlyphResolver
	query    query.FeatureQuery
	tok      *tokenizer.Tokenizer
	arabic   *arabic.Shaper
	latin    *latin.Shaper

	features  map[language.Script][]string
	normalize bool

	lastText  string
	processed bool

	tokenizeCount int
}

// NewBidi constructs a Bidi driver for baseDir, resolving characters to
// glyph ids through resolver and GSUB lookups through q. Both collaborators
// are required; a nil one is a programmer error, not a runtime condition a
// caller can recover from, so it panics.
func NewBidi(baseDir bidi.Direction, resolver query.GlyphResolver, q query.FeatureQuery) *Bidi {
	assert(resolver != nil, "glyph resolver must not be nil")
	assert(q != nil, "feature query must not be nil")

	b := &Bidi{
		baseDir:   baseDir,
		resolver:  resolver,
		query:     q,
		tok:       tokenizer.New(),
		arabic:    arabic.New(arabicScript, q),
		latin:     latin.New(latinScript, q),
		features:  make(map[language.Script][]string),
		normalize: true,
	}
	if err := script.RegisterAll(b.tok); err != nil {
		panic("otshaper: registering script context checkers: " + err.Error())
	}
	if _, err := b.tok.RegisterModifier("glyphIndex", nil, func(tok *tokenizer.Token, _ tokenizer.ContextParams) any {
		return resolver.CharToGlyphIndex(tok.Char)
	}); err != nil {
		panic("otshaper: registering glyphIndex modifier: " + err.Error())
	}
	return b
}

// SetNormalize toggles the optional Arabic-aware NFC pre-pass ProcessText
// runs before tokenizing; on by default.
func (b *Bidi) SetNormalize(on bool) {
	b.normalize = on
}

// RegisterModifier exposes the underlying Tokenizer's modifier registry, so
// callers can layer additional per-token state (e.g. positioning) onto the
// same pipeline.
func (b *Bidi) RegisterModifier(id string, cond tokenizer.ModifierCond, mod tokenizer.ModifierFunc) (tokenizer.Subscription, error) {
	return b.tok.RegisterModifier(id, cond, mod)
}

// ApplyFeatures records which feature tags are requested for which script;
// ProcessText consults this when deciding whether a pipeline stage runs for
// a given range: a stage only runs when its context has a closed range AND
// its feature tag was requested for that range's script.
func (b *Bidi) ApplyFeatures(requests []FeatureRequest) {
	features := make(map[language.Script][]string, len(requests))
	for _, r := range requests {
		features[r.Script] = r.Tags
	}
	b.features = features
}

// ProcessText tokenizes and shapes text: if text is identical to the last
// processed text, the cached result is returned without re-tokenizing or
// re-shaping; otherwise text is (optionally) normalized, tokenized, and
// every pipeline stage whose feature is requested runs in a fixed order.
func (b *Bidi) ProcessText(text string) []*tokenizer.Token {
	if b.processed && text == b.lastText {
		return b.tok.Tokens()
	}
	b.lastText = text
	b.processed = true

	input := text
	if b.normalize && containsArabic(text) {
		input = b.normalizeForArabic(text)
	}
	b.tok.Tokenize(input)
	b.tokenizeCount++
	if err := b.applyFeaturePipeline(); err != nil {
		tracer().Errorf("applyFeaturePipeline: %v", err)
	}
	return b.tok.Tokens()
}

// applyFeaturePipeline runs the four fixed-order shaping stages: Arabic
// positional forms, Arabic required ligatures, Latin ligatures, and
// (unconditionally) Arabic sentence reversal.
func (b *Bidi) applyFeaturePipeline() error {
	arabTags := b.features[arabicScript]
	latnTags := b.features[latinScript]

	if hasAnyTag(arabTags, arabicFormTags) {
		ranges, _ := b.tok.GetContextRanges(script.NameArabicWord)
		for _, rng := range ranges {
			if err := b.arabic.ApplyPositionalForms(b.tok, rng); err != nil {
				return err
			}
		}
	}
	if hasTag(arabTags, "rlig") {
		ranges, _ := b.tok.GetContextRanges(script.NameArabicWord)
		for _, rng := range ranges {
			if err := b.arabic.ApplyRequiredLigatures(b.tok, rng); err != nil {
				return err
			}
		}
	}
	if hasTag(latnTags, "liga") {
		ranges, _ := b.tok.GetContextRanges(script.NameLatinWord)
		for _, rng := range ranges {
			if err := b.latin.ApplyLigatures(b.tok, rng); err != nil {
				return err
			}
		}
	}
	// Arabic sentence reversal is structural, not a GSUB feature: it runs
	// for every arabicSentence range regardless of requested tags.
	ranges, _ := b.tok.GetContextRanges(script.NameArabicSentence)
	for _, rng := range ranges {
		if err := b.reverseRange(rng); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bidi) reverseRange(rng tokenizer.ContextRange) error {
	toks := b.tok.GetRangeTokens(rng)
	if len(toks) < 2 {
		return nil
	}
	reversed := make([]*tokenizer.Token, len(toks))
	for i, t := range toks {
		reversed[len(toks)-1-i] = t
	}
	off := rng.EndOffset
	return b.tok.ReplaceRange(rng.StartIndex, &off, reversed, false)
}

// GetBidiText processes text (if not already cached) and returns the
// concatenation of every token's original character, ignoring any shaping
// state written since tokenization.
func (b *Bidi) GetBidiText(text string) string {
	b.ProcessText(text)
	return b.tok.GetText()
}

// GetTextGlyphs processes text (if not already cached) and returns, for
// every token not marked deleted, the first element of its ActiveState
// value if that value is a slice, else the value itself.
func (b *Bidi) GetTextGlyphs(text string) []any {
	b.ProcessText(text)
	toks := b.tok.Tokens()
	out := make([]any, 0, len(toks))
	for _, t := range toks {
		if t.Deleted() {
			continue
		}
		v := t.ActiveState().Value
		if list, ok := v.([]any); ok && len(list) > 0 {
			out = append(out, list[0])
			continue
		}
		out = append(out, v)
	}
	return out
}

// ContextRanges exposes the underlying Tokenizer's completed ranges for
// name, letting callers (and tests) inspect how the last ProcessText call
// segmented the text without reaching into Bidi's internals.
func (b *Bidi) ContextRanges(name string) ([]tokenizer.ContextRange, bool) {
	return b.tok.GetContextRanges(name)
}

// TokenizeCount reports how many times Tokenize has actually run, making
// ProcessText's caching behavior directly testable.
func (b *Bidi) TokenizeCount() int {
	return b.tokenizeCount
}

// normalizeForArabic applies an NFC pass, but only when every resulting
// composed rune has a real glyph in the font (via resolver) — otherwise
// the original text is kept so a missing precomposed glyph never turns
// into a .notdef box.
func (b *Bidi) normalizeForArabic(text string) string {
	composed := norm.NFC.String(text)
	if composed == text {
		return text
	}
	for _, r := range composed {
		if b.resolver.CharToGlyphIndex(r) == query.NotDef {
			return text
		}
	}
	return composed
}

func containsArabic(text string) bool {
	for _, r := range text {
		if script.IsArabic(r) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func hasAnyTag(tags []string, want []string) bool {
	for _, w := range want {
		if hasTag(tags, w) {
			return true
		}
	}
	return false
}
