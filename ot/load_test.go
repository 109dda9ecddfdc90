package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func minimalTree() *TableTree {
	return &TableTree{
		Scripts:  []ScriptRecord{{Tag: T("latn"), Features: []int{0}}},
		Features: []FeatureRecord{{Tag: T("liga"), Lookups: []int{0}}},
		Lookups: []LookupRecord{{
			Type:   LookupTypeSingle,
			Single: []SingleSubstRecord{{In: "a", Out: "a.alt"}},
		}},
		CMap:       []CMapEntry{{Code: 'a', Name: "a"}},
		GlyphOrder: []string{".notdef", "a", "a.alt"},
	}
}

func TestLoadRejectsIncompleteTrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	cases := []struct {
		name string
		tree *TableTree
	}{
		{"nil tree", nil},
		{"no lookups", &TableTree{Scripts: []ScriptRecord{{Tag: T("latn")}}}},
		{"no scripts", &TableTree{Lookups: []LookupRecord{{Type: LookupTypeSingle}}}},
	}
	for _, c := range cases {
		_, err := Load(c.tree)
		if err == nil {
			t.Fatalf("%s: Load should fail", c.name)
		}
		if !errors.Is(err, ErrMissingRequiredTable) {
			t.Errorf("%s: error should be ErrMissingRequiredTable, is: %v", c.name, err)
		}
	}
}

func TestLoadMinimalTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	model, err := Load(minimalTree())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	feats, ok := model.ScriptFeatures(T("latn"))
	if !ok || len(feats) != 1 {
		t.Fatalf("script 'latn' should carry 1 feature, has %v", feats)
	}
	feat, ok := model.Feature(feats[0])
	if !ok {
		t.Fatal("feature 0 not found")
	}
	assert.Equal(t, T("liga"), feat.Tag)
	assert.Equal(t, []int{0}, feat.Lookups)
	lk := model.Lookup(0)
	if lk == nil || lk.Kind != KindSingle {
		t.Fatalf("lookup 0 should be a single substitution, is %v", lk)
	}
	g, ok := model.CharToGlyph('a')
	if !ok {
		t.Fatal("cmap should map 'a'")
	}
	out, ok := lk.Single[g]
	if !ok {
		t.Fatal("single substitution should cover 'a'")
	}
	assert.Equal(t, "a.alt", model.GlyphName(out))
}

func TestLoadGlyphOrderPinsIndices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	model, err := Load(minimalTree())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i, name := range []string{".notdef", "a", "a.alt"} {
		g, ok := model.GlyphID(name)
		if !ok {
			t.Fatalf("glyph '%s' not interned", name)
		}
		assert.Equal(t, GlyphIndex(i), g, "glyph '%s' should keep its GlyphOrder position", name)
	}
}

func TestLoadNormalizesLigatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree := minimalTree()
	tree.Lookups = append(tree.Lookups, LookupRecord{
		Type: LookupTypeLigature,
		LigatureSets: []LigatureSetRecord{{
			Glyph: "f",
			Ligatures: []LigatureRecord{
				{Components: []string{"i"}, Glyph: "f_i"},
				{Components: []string{"a", "b", "c", "d"}, Glyph: "bogus"}, // four components, dropped
			},
		}},
	})
	model, err := Load(tree)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	lk := model.Lookup(1)
	if lk == nil || lk.Kind != KindLigature {
		t.Fatal("lookup 1 should be a ligature lookup")
	}
	f, _ := model.GlyphID("f")
	if len(lk.Ligatures[f]) != 1 {
		t.Fatalf("expected 1 surviving ligature rule, got %d", len(lk.Ligatures[f]))
	}
	assert.NotEmpty(t, model.Errors(), "dropped rule should leave a diagnostic")
}

func TestLoadValidatesContextTargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree := minimalTree()
	tree.Lookups = append(tree.Lookups, LookupRecord{
		Type: LookupTypeChainContext,
		ChainContext: []ChainContextRecord{
			{Input: [][]string{{"a"}}, Lookahead: []string{"b"}, TargetLookup: 0},
			{Input: [][]string{{"a"}}, Lookahead: []string{"b"}, TargetLookup: 99}, // out of range
			{Input: [][]string{{"a"}}, Lookahead: []string{"b"}, TargetLookup: 1},  // not a single
		},
	})
	model, err := Load(tree)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	lk := model.Lookup(1)
	if len(lk.Chain) != 1 {
		t.Fatalf("expected 1 surviving chain rule, got %d", len(lk.Chain))
	}
	assert.Equal(t, 0, lk.Chain[0].TargetLookup)
	assert.NotEmpty(t, model.Errors())
}

func TestLoadClassContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree := minimalTree()
	tree.Lookups = append(tree.Lookups, LookupRecord{
		Type:      LookupTypeClassContext,
		ClassDefs: []ClassDefRecord{{Glyph: "a", Class: 1}, {Glyph: "b", Class: 2}},
		ClassSets: []ClassSetRecord{{
			Class: 1,
			Rules: []ClassRuleRecord{{NextClass: 2, TargetLookup: 0}},
		}},
	})
	model, err := Load(tree)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	lk := model.Lookup(1)
	if lk == nil || lk.Kind != KindClassContext {
		t.Fatal("lookup 1 should be a class-context lookup")
	}
	a, _ := model.GlyphID("a")
	assert.Equal(t, uint16(1), lk.Classes[a])
	if len(lk.Rules) != 1 {
		t.Fatalf("expected 1 class rule, got %d", len(lk.Rules))
	}
	assert.Equal(t, uint16(2), lk.Rules[0].NextClass)
}
