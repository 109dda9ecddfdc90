package ot

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// ttxFixture is a reduced fontTools dump: GlyphOrder, one cmap subtable and a
// GSUB with one lookup of each supported type.
const ttxFixture = `<?xml version="1.0" encoding="UTF-8"?>
<ttFont sfntVersion="\x00\x01\x00\x00" ttLibVersion="4.33">
  <GlyphOrder>
    <GlyphID id="0" name=".notdef"/>
    <GlyphID id="1" name="ka"/>
    <GlyphID id="2" name="virama"/>
    <GlyphID id="3" name="ta"/>
    <GlyphID id="4" name="k_ta"/>
    <GlyphID id="5" name="ka.alt"/>
  </GlyphOrder>
  <cmap>
    <tableVersion version="0"/>
    <cmap_format_4 platformID="0" platEncID="3" language="0">
      <map code="0x915" name="ka"/>
      <map code="0x924" name="ta"/>
      <map code="0x94d" name="virama"/>
    </cmap_format_4>
    <cmap_format_12 platformID="3" platEncID="10" language="0">
      <map code="0x915" name="ka"/>
    </cmap_format_12>
  </cmap>
  <GSUB>
    <Version value="0x00010000"/>
    <ScriptList>
      <ScriptRecord index="0">
        <ScriptTag value="dev2"/>
        <Script>
          <DefaultLangSys>
            <ReqFeatureIndex value="65535"/>
            <FeatureIndex index="0" value="0"/>
            <FeatureIndex index="1" value="1"/>
          </DefaultLangSys>
        </Script>
      </ScriptRecord>
    </ScriptList>
    <FeatureList>
      <FeatureRecord index="0">
        <FeatureTag value="akhn"/>
        <Feature>
          <LookupListIndex index="0" value="1"/>
        </Feature>
      </FeatureRecord>
      <FeatureRecord index="1">
        <FeatureTag value="calt"/>
        <Feature>
          <LookupListIndex index="0" value="2"/>
          <LookupListIndex index="1" value="3"/>
        </Feature>
      </FeatureRecord>
    </FeatureList>
    <LookupList>
      <Lookup index="0">
        <LookupType value="1"/>
        <LookupFlag value="0"/>
        <SingleSubst index="0">
          <Substitution in="ka" out="ka.alt"/>
        </SingleSubst>
      </Lookup>
      <Lookup index="1">
        <LookupType value="4"/>
        <LookupFlag value="0"/>
        <LigatureSubst index="0">
          <LigatureSet glyph="ka">
            <Ligature components="virama,ta" glyph="k_ta"/>
          </LigatureSet>
        </LigatureSubst>
      </Lookup>
      <Lookup index="2">
        <LookupType value="6"/>
        <LookupFlag value="0"/>
        <ChainContextSubst index="0" Format="3">
          <InputCoverage index="0">
            <Glyph value="ka"/>
          </InputCoverage>
          <LookAheadCoverage index="0">
            <Glyph value="ta"/>
          </LookAheadCoverage>
          <SubstLookupRecord index="0">
            <SequenceIndex value="0"/>
            <LookupListIndex value="0"/>
          </SubstLookupRecord>
        </ChainContextSubst>
      </Lookup>
      <Lookup index="3">
        <LookupType value="5"/>
        <LookupFlag value="0"/>
        <ContextSubst index="0" Format="2">
          <Coverage>
            <Glyph value="ka"/>
          </Coverage>
          <ClassDef>
            <ClassDef glyph="ka" class="1"/>
            <ClassDef glyph="ta" class="2"/>
          </ClassDef>
          <SubClassSet index="0" empty="1"/>
          <SubClassSet index="1">
            <SubClassRule index="0">
              <Class index="0" value="2"/>
              <SubstLookupRecord index="0">
                <SequenceIndex value="1"/>
                <LookupListIndex value="0"/>
              </SubstLookupRecord>
            </SubClassRule>
          </SubClassSet>
        </ContextSubst>
      </Lookup>
    </LookupList>
  </GSUB>
</ttFont>`

func TestParseTTX(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree, err := ParseTTX(strings.NewReader(ttxFixture))
	if err != nil {
		t.Fatalf("ParseTTX failed: %v", err)
	}
	assert.Equal(t, []string{".notdef", "ka", "virama", "ta", "k_ta", "ka.alt"}, tree.GlyphOrder)
	assert.Len(t, tree.CMap, 3, "repeated cmap entries should be deduplicated")
	if len(tree.Scripts) != 1 {
		t.Fatalf("expected 1 script record, got %d", len(tree.Scripts))
	}
	assert.Equal(t, T("dev2"), tree.Scripts[0].Tag)
	assert.Equal(t, []int{0, 1}, tree.Scripts[0].Features)
	if len(tree.Features) != 2 {
		t.Fatalf("expected 2 feature records, got %d", len(tree.Features))
	}
	assert.Equal(t, []int{2, 3}, tree.Features[1].Lookups)
	if len(tree.Lookups) != 4 {
		t.Fatalf("expected 4 lookups, got %d", len(tree.Lookups))
	}
}

func TestParseTTXLookupDetails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree, err := ParseTTX(strings.NewReader(ttxFixture))
	if err != nil {
		t.Fatalf("ParseTTX failed: %v", err)
	}
	single := tree.Lookups[0]
	assert.Equal(t, LookupTypeSingle, single.Type)
	assert.Equal(t, []SingleSubstRecord{{In: "ka", Out: "ka.alt"}}, single.Single)

	lig := tree.Lookups[1]
	assert.Equal(t, LookupTypeLigature, lig.Type)
	if assert.Len(t, lig.LigatureSets, 1) {
		assert.Equal(t, "ka", lig.LigatureSets[0].Glyph)
		assert.Equal(t, []string{"virama", "ta"}, lig.LigatureSets[0].Ligatures[0].Components)
	}

	chain := tree.Lookups[2]
	assert.Equal(t, LookupTypeChainContext, chain.Type)
	if assert.Len(t, chain.ChainContext, 1) {
		assert.Equal(t, [][]string{{"ka"}}, chain.ChainContext[0].Input)
		assert.Equal(t, []string{"ta"}, chain.ChainContext[0].Lookahead)
		assert.Empty(t, chain.ChainContext[0].Backtrack)
		assert.Equal(t, 0, chain.ChainContext[0].TargetLookup)
	}

	classes := tree.Lookups[3]
	assert.Equal(t, LookupTypeClassContext, classes.Type)
	assert.Contains(t, classes.ClassDefs, ClassDefRecord{Glyph: "ka", Class: 1})
	if assert.Len(t, classes.ClassSets, 1, "empty class sets should be skipped") {
		assert.Equal(t, 1, classes.ClassSets[0].Class)
		assert.Equal(t, []ClassRuleRecord{{NextClass: 2, TargetLookup: 0}}, classes.ClassSets[0].Rules)
	}
}

func TestParseTTXLoadRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	tree, err := ParseTTX(strings.NewReader(ttxFixture))
	if err != nil {
		t.Fatalf("ParseTTX failed: %v", err)
	}
	model, err := Load(tree)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(model.Errors()) > 0 {
		t.Errorf("unexpected diagnostics: %v", model.Errors())
	}
	g, ok := model.CharToGlyph(0x915)
	if !ok {
		t.Fatal("cmap should map U+0915")
	}
	assert.Equal(t, "ka", model.GlyphName(g))
}

func TestParseTTXRejectsEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.tables")
	defer teardown()
	_, err := ParseTTX(strings.NewReader(""))
	if err == nil {
		t.Fatal("ParseTTX should fail on empty input")
	}
}
