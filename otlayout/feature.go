package otlayout

import (
	"fmt"

	"github.com/glyphrun/otsubst/ot"
)

// Feature tags with a reordering role. Lookups linked from these features are
// not applied by the substitution engine; they drive the script-specific
// reordering passes instead.
var (
	// TagRephForm marks lookups whose ligature rules describe the reph form
	// (repositionable consonant-sign cluster).
	TagRephForm = ot.T("rphf")
	// TagBelowBaseForm marks lookups whose ligature rules describe below-base
	// conjunct (rakaar) forms.
	TagBelowBaseForm = ot.T("rkrf")
)

// ActiveLookups is the result of resolving a script tag pair against the
// font's feature index: the ordered list of lookup indices active for
// substitution, plus the indices tagged with reordering feature roles.
type ActiveLookups struct {
	Script  ot.Tag // the tag that was actually found (preferred or fallback)
	Indices []int  // substitution lookups, font-declared priority order
	Reph    []int  // lookups tagged 'rphf', consumed by reordering
	Rakaar  []int  // lookups tagged 'rkrf', consumed by reordering
}

// Resolve selects the active lookups for a script. It scans the feature index
// for the preferred tag; if the font does not declare it, the fallback tag is
// tried. Lookup order is preserved exactly as declared — earlier lookups
// apply first and their output can feed later lookups.
//
// If neither tag is present, Resolve fails with ot.ErrNoActiveScript; the
// engine must not process any text then.
func Resolve(model *ot.TableModel, pref, fallback ot.Tag) (ActiveLookups, error) {
	if model == nil {
		return ActiveLookups{}, errLayout("no table model")
	}
	for _, script := range []ot.Tag{pref, fallback} {
		if script == 0 {
			continue
		}
		feats, ok := model.ScriptFeatures(script)
		if !ok {
			continue
		}
		active := ActiveLookups{Script: script}
		seen := make(map[int]bool)
		for _, fi := range feats {
			feat, ok := model.Feature(fi)
			if !ok {
				continue
			}
			for _, li := range feat.Lookups {
				if seen[li] {
					continue // a lookup shared by features keeps its first position
				}
				seen[li] = true
				active.Indices = append(active.Indices, li)
				switch feat.Tag {
				case TagRephForm:
					active.Reph = append(active.Reph, li)
				case TagBelowBaseForm:
					active.Rakaar = append(active.Rakaar, li)
				}
			}
		}
		tracer().Infof("script '%s': %d active lookups (%d reph, %d rakaar)",
			script, len(active.Indices), len(active.Reph), len(active.Rakaar))
		return active, nil
	}
	return ActiveLookups{}, fmt.Errorf("script '%s' (fallback '%s'): %w",
		pref, fallback, ot.ErrNoActiveScript)
}

// LigatureRules collects the ligature rules of the given lookups, preserving
// lookup order. Used by reordering to obtain the reph and rakaar rule sets.
func LigatureRules(model *ot.TableModel, lookups []int) map[ot.GlyphIndex][]ot.Ligature {
	rules := make(map[ot.GlyphIndex][]ot.Ligature)
	for _, li := range lookups {
		lk := model.Lookup(li)
		if lk == nil || lk.Kind != ot.KindLigature {
			continue
		}
		for anchor, ligs := range lk.Ligatures {
			rules[anchor] = append(rules[anchor], ligs...)
		}
	}
	return rules
}
