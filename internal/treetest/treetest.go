/*
Package treetest builds synthetic table trees for tests.

Tests across the module need small, hand-crafted GSUB fixtures without
depending on a real font dump. The builder assembles an ot.TableTree the same
way a table reader would, with glyph names resolved through GlyphOrder.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package treetest

import "github.com/glyphrun/otsubst/ot"

// Builder assembles a synthetic TableTree. Zero value is ready to use; calls
// chain.
type Builder struct {
	tree ot.TableTree
}

func New() *Builder {
	return &Builder{}
}

// Glyphs appends names to the glyph order. Index positions follow append
// order, matching a font's GlyphOrder table.
func (b *Builder) Glyphs(names ...string) *Builder {
	b.tree.GlyphOrder = append(b.tree.GlyphOrder, names...)
	return b
}

// Char adds a character map entry.
func (b *Builder) Char(code rune, glyph string) *Builder {
	b.tree.CMap = append(b.tree.CMap, ot.CMapEntry{Code: code, Name: glyph})
	return b
}

// Script declares a script record referencing feature indices.
func (b *Builder) Script(tag string, features ...int) *Builder {
	b.tree.Scripts = append(b.tree.Scripts, ot.ScriptRecord{
		Tag:      ot.T(tag),
		Features: features,
	})
	return b
}

// Feature declares a feature record referencing lookup indices.
func (b *Builder) Feature(tag string, lookups ...int) *Builder {
	b.tree.Features = append(b.tree.Features, ot.FeatureRecord{
		Tag:     ot.T(tag),
		Lookups: lookups,
	})
	return b
}

// Lookup appends a lookup record; its index is its append position.
func (b *Builder) Lookup(rec ot.LookupRecord) *Builder {
	b.tree.Lookups = append(b.tree.Lookups, rec)
	return b
}

// Tree returns the assembled tree.
func (b *Builder) Tree() *ot.TableTree {
	return &b.tree
}

// Model loads the assembled tree, panicking on load failure. Fixtures are
// static, so a failure is a broken test setup.
func (b *Builder) Model() *ot.TableModel {
	m, err := ot.Load(&b.tree)
	if err != nil {
		panic("treetest: fixture does not load: " + err.Error())
	}
	return m
}

// --- Lookup record constructors --------------------------------------------

// Single builds a single-substitution lookup record from alternating in/out
// glyph name pairs.
func Single(pairs ...string) ot.LookupRecord {
	if len(pairs)%2 != 0 {
		panic("treetest: Single needs in/out pairs")
	}
	rec := ot.LookupRecord{Type: ot.LookupTypeSingle}
	for i := 0; i < len(pairs); i += 2 {
		rec.Single = append(rec.Single, ot.SingleSubstRecord{In: pairs[i], Out: pairs[i+1]})
	}
	return rec
}

// Ligature builds a ligature lookup record with a single rule.
func Ligature(anchor string, components []string, result string) ot.LookupRecord {
	return ot.LookupRecord{
		Type: ot.LookupTypeLigature,
		LigatureSets: []ot.LigatureSetRecord{{
			Glyph: anchor,
			Ligatures: []ot.LigatureRecord{{
				Components: components,
				Glyph:      result,
			}},
		}},
	}
}

// AddLigature appends a rule to a ligature lookup record.
func AddLigature(rec ot.LookupRecord, anchor string, components []string, result string) ot.LookupRecord {
	lig := ot.LigatureRecord{Components: components, Glyph: result}
	for i := range rec.LigatureSets {
		if rec.LigatureSets[i].Glyph == anchor {
			rec.LigatureSets[i].Ligatures = append(rec.LigatureSets[i].Ligatures, lig)
			return rec
		}
	}
	rec.LigatureSets = append(rec.LigatureSets, ot.LigatureSetRecord{
		Glyph:     anchor,
		Ligatures: []ot.LigatureRecord{lig},
	})
	return rec
}

// Chain builds a chain-context lookup record with a single rule.
func Chain(input [][]string, lookahead, backtrack []string, target int) ot.LookupRecord {
	return ot.LookupRecord{
		Type: ot.LookupTypeChainContext,
		ChainContext: []ot.ChainContextRecord{{
			Input:        input,
			Lookahead:    lookahead,
			Backtrack:    backtrack,
			TargetLookup: target,
		}},
	}
}

// Classes builds a class-context lookup record from a glyph→class map and
// per-class rule sets.
func Classes(defs map[string]int, sets ...ot.ClassSetRecord) ot.LookupRecord {
	rec := ot.LookupRecord{Type: ot.LookupTypeClassContext, ClassSets: sets}
	for glyph, cls := range defs {
		rec.ClassDefs = append(rec.ClassDefs, ot.ClassDefRecord{Glyph: glyph, Class: cls})
	}
	return rec
}

// Rules builds one class's rule set for Classes.
func Rules(class int, rules ...ot.ClassRuleRecord) ot.ClassSetRecord {
	return ot.ClassSetRecord{Class: class, Rules: rules}
}
