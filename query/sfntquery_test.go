package query_test

import (
	"testing"

	"github.com/npillmayer/otshaper/query"
	"golang.org/x/text/language"
)

var latn = language.MustParseScript("Latn")

func TestFeatureTableBuilderSingle(t *testing.T) {
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	sel := query.Selector{Script: latn, Tag: query.T("isol")}
	b.AddSingle(sel, 10, 20)

	if !q.Supports(sel) {
		t.Fatal("expected Supports to report true after AddSingle")
	}
	sub, ok := q.Lookup(query.LookupRequest{Script: latn, Tag: sel.Tag, Glyphs: []query.GlyphIndex{10}, Index: 0})
	if !ok {
		t.Fatal("expected a lookup match")
	}
	if sub.Kind != query.SubstitutionSingle || sub.Glyph != 20 || sub.Length != 1 {
		t.Fatalf("unexpected substitution: %+v", sub)
	}
}

func TestFeatureTableBuilderLigature(t *testing.T) {
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	sel := query.Selector{Script: latn, Tag: query.T("liga")}
	b.AddLigature(sel, []query.GlyphIndex{1, 2}, 99)

	sub, ok := q.Lookup(query.LookupRequest{Script: latn, Tag: sel.Tag, Glyphs: []query.GlyphIndex{1, 2, 3}, Index: 0})
	if !ok {
		t.Fatal("expected a ligature match")
	}
	if sub.Kind != query.SubstitutionLigature || sub.Glyph != 99 || sub.Length != 2 {
		t.Fatalf("unexpected substitution: %+v", sub)
	}

	if _, ok := q.Lookup(query.LookupRequest{Script: latn, Tag: sel.Tag, Glyphs: []query.GlyphIndex{1, 3}, Index: 0}); ok {
		t.Fatal("expected no match for non-matching glyph sequence")
	}
}

func TestFeatureTableBuilderLongestMatchFirst(t *testing.T) {
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	sel := query.Selector{Script: latn, Tag: query.T("liga")}
	b.AddLigature(sel, []query.GlyphIndex{1, 2}, 50)
	b.AddLigature(sel, []query.GlyphIndex{1, 2, 3}, 51)

	sub, ok := q.Lookup(query.LookupRequest{Script: latn, Tag: sel.Tag, Glyphs: []query.GlyphIndex{1, 2, 3}, Index: 0})
	if !ok || sub.Glyph != 51 || sub.Length != 3 {
		t.Fatalf("expected the longer ligature to win, got %+v", sub)
	}
}

func TestSFNTQueryCharToGlyphIndexWithoutFont(t *testing.T) {
	q := query.NewSFNTQuery(nil)
	if got := q.CharToGlyphIndex('a'); got != query.NotDef {
		t.Fatalf("expected NotDef without a font, got %v", got)
	}
}

func TestSupportsWithoutTagChecksAnyFeatureForScript(t *testing.T) {
	q := query.NewSFNTQuery(nil)
	b := query.NewFeatureTableBuilder(q)
	b.AddSingle(query.Selector{Script: latn, Tag: query.T("isol")}, 1, 2)

	if !q.Supports(query.Selector{Script: latn}) {
		t.Fatal("expected Supports with zero Tag to report true for a script with any registered feature")
	}
	arab := language.MustParseScript("Arab")
	if q.Supports(query.Selector{Script: arab}) {
		t.Fatal("expected Supports to report false for an unregistered script")
	}
}
