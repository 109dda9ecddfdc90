package ot

import (
	"fmt"
	"math"
)

// LoadOption guides and influences normalization of the table tree.
type LoadOption int

const (
	// RelaxTargets accepts chain-/class-context rules whose target lookup is
	// not a single substitution, instead of dropping them with a diagnostic.
	// The engine will still ignore such rules; this option only silences the
	// load-time check for fonts known to carry unused rule cruft.
	RelaxTargets LoadOption = iota
)

// Load normalizes a table tree into a TableModel. It builds, in order, the
// script/feature index (preserving the font's declared ordering, which
// determines substitution priority), the typed lookup table, and the
// character map.
//
// Load fails with ErrMissingRequiredTable when the tree carries no
// substitution lookups or no script records; no shaping is possible then.
// All other irregularities are accumulated as TableError diagnostics.
func Load(tree *TableTree, opts ...LoadOption) (*TableModel, error) {
	if tree == nil || len(tree.Lookups) == 0 || len(tree.Scripts) == 0 {
		return nil, ErrMissingRequiredTable
	}
	relaxTargets := false
	for _, o := range opts {
		if o == RelaxTargets {
			relaxTargets = true
		}
	}
	m := &TableModel{
		scripts: make(map[Tag][]int, len(tree.Scripts)),
		cmap:    make(map[rune]GlyphIndex, len(tree.CMap)),
		ids:     make(map[string]GlyphIndex),
	}
	ec := &errorCollector{}
	// glyph order, if present, pins glyph indices; otherwise names are
	// interned in first-seen order, which is still stable per load
	for _, name := range tree.GlyphOrder {
		m.intern(name, ec)
	}
	m.loadScripts(tree, ec)
	m.loadLookups(tree, relaxTargets, ec)
	m.loadCMap(tree, ec)
	m.errors = ec.errors
	tracer().Infof("table model loaded: %d scripts, %d features, %d lookups, %d cmap entries",
		len(m.scripts), len(m.features), len(m.lookups), len(m.cmap))
	return m, nil
}

func (m *TableModel) intern(name string, ec *errorCollector) GlyphIndex {
	if g, ok := m.ids[name]; ok {
		return g
	}
	if len(m.names) > math.MaxUint16 {
		ec.addError("GlyphOrder", "more than 65536 glyphs, extra names collapse to .notdef",
			SeverityCritical)
		return 0
	}
	g := GlyphIndex(len(m.names))
	m.names = append(m.names, name)
	m.ids[name] = g
	return g
}

func (m *TableModel) loadScripts(tree *TableTree, ec *errorCollector) {
	m.features = make([]FeatureView, len(tree.Features))
	for i, fr := range tree.Features {
		lookups := make([]int, 0, len(fr.Lookups))
		for _, li := range fr.Lookups {
			if li < 0 || li >= len(tree.Lookups) {
				ec.addError("FeatureList", fmt.Sprintf("feature '%s' references lookup %d out of range",
					fr.Tag, li), SeverityMajor)
				continue
			}
			lookups = append(lookups, li)
		}
		m.features[i] = FeatureView{Tag: fr.Tag, Lookups: lookups}
	}
	for _, sr := range tree.Scripts {
		feats := m.scripts[sr.Tag]
		for _, fi := range sr.Features {
			if fi < 0 || fi >= len(tree.Features) {
				ec.addError("ScriptList", fmt.Sprintf("script '%s' references feature %d out of range",
					sr.Tag, fi), SeverityMajor)
				continue
			}
			feats = append(feats, fi)
		}
		m.scripts[sr.Tag] = feats
	}
}

func (m *TableModel) loadLookups(tree *TableTree, relaxTargets bool, ec *errorCollector) {
	m.lookups = make([]Lookup, len(tree.Lookups))
	for i, lr := range tree.Lookups {
		lk := Lookup{Index: i}
		switch lr.Type {
		case LookupTypeSingle:
			lk.Kind = KindSingle
			lk.Single = make(map[GlyphIndex]GlyphIndex, len(lr.Single))
			for _, s := range lr.Single {
				if s.In == "" || s.Out == "" {
					ec.addError("SingleSubst", fmt.Sprintf("lookup %d has empty substitution entry", i),
						SeverityMinor)
					continue
				}
				lk.Single[m.intern(s.In, ec)] = m.intern(s.Out, ec)
			}
		case LookupTypeLigature:
			lk.Kind = KindLigature
			lk.Ligatures = make(map[GlyphIndex][]Ligature, len(lr.LigatureSets))
			for _, set := range lr.LigatureSets {
				anchor := m.intern(set.Glyph, ec)
				for _, lig := range set.Ligatures {
					if len(lig.Components) < 1 || len(lig.Components) > 3 {
						ec.addError("LigatureSubst", fmt.Sprintf(
							"lookup %d: ligature for '%s' has %d components, want 1–3",
							i, set.Glyph, len(lig.Components)), SeverityMajor)
						continue
					}
					comps := make([]GlyphIndex, len(lig.Components))
					for j, c := range lig.Components {
						comps[j] = m.intern(c, ec)
					}
					lk.Ligatures[anchor] = append(lk.Ligatures[anchor], Ligature{
						Components: comps,
						Result:     m.intern(lig.Glyph, ec),
					})
				}
			}
		case LookupTypeClassContext:
			lk.Kind = KindClassContext
			lk.Classes = make(map[GlyphIndex]uint16, len(lr.ClassDefs))
			for _, cd := range lr.ClassDefs {
				lk.Classes[m.intern(cd.Glyph, ec)] = uint16(cd.Class)
			}
			for _, cs := range lr.ClassSets {
				for _, rule := range cs.Rules {
					if !m.checkTarget(tree, i, rule.TargetLookup, relaxTargets, ec) {
						continue
					}
					lk.Rules = append(lk.Rules, ClassRule{
						Class:        uint16(cs.Class),
						NextClass:    uint16(rule.NextClass),
						TargetLookup: rule.TargetLookup,
					})
				}
			}
		case LookupTypeChainContext:
			lk.Kind = KindChainContext
			for _, cc := range lr.ChainContext {
				if len(cc.Input) < 1 || len(cc.Input) > 2 {
					ec.addError("ChainContextSubst", fmt.Sprintf(
						"lookup %d: input coverage has %d sets, want 1 or 2", i, len(cc.Input)),
						SeverityMajor)
					continue
				}
				if !m.checkTarget(tree, i, cc.TargetLookup, relaxTargets, ec) {
					continue
				}
				rule := ChainRule{
					Input:        make([]GlyphSet, len(cc.Input)),
					TargetLookup: cc.TargetLookup,
				}
				for j, names := range cc.Input {
					rule.Input[j] = m.internSet(names, ec)
				}
				if len(cc.Lookahead) > 0 {
					rule.Lookahead = m.internSet(cc.Lookahead, ec)
				}
				if len(cc.Backtrack) > 0 {
					rule.Backtrack = m.internSet(cc.Backtrack, ec)
				}
				lk.Chain = append(lk.Chain, rule)
			}
		default:
			ec.addError("LookupList", fmt.Sprintf("lookup %d has unsupported type %d", i, lr.Type),
				SeverityMinor)
		}
		m.lookups[i] = lk
	}
}

// checkTarget verifies that a nested target lookup exists and is a single
// substitution, which is all the engine will invoke from context rules.
func (m *TableModel) checkTarget(tree *TableTree, lookup, target int, relax bool, ec *errorCollector) bool {
	if target < 0 || target >= len(tree.Lookups) {
		ec.addError("LookupList", fmt.Sprintf("lookup %d: target lookup %d out of range", lookup, target),
			SeverityMajor)
		return false
	}
	if tree.Lookups[target].Type != LookupTypeSingle {
		if relax {
			return false
		}
		ec.addError("LookupList", fmt.Sprintf("lookup %d: target lookup %d is type %d, want single",
			lookup, target, tree.Lookups[target].Type), SeverityMajor)
		return false
	}
	return true
}

func (m *TableModel) internSet(names []string, ec *errorCollector) GlyphSet {
	set := make(GlyphSet, len(names))
	for _, n := range names {
		set[m.intern(n, ec)] = struct{}{}
	}
	return set
}

func (m *TableModel) loadCMap(tree *TableTree, ec *errorCollector) {
	for _, entry := range tree.CMap {
		if entry.Name == "" {
			ec.addError("cmap", fmt.Sprintf("codepoint U+%04X maps to empty glyph name", entry.Code),
				SeverityMinor)
			continue
		}
		m.cmap[entry.Code] = m.intern(entry.Name, ec)
	}
}
