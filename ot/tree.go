package ot

// TableTree is the structured table representation an external font-table
// reader hands to Load. It mirrors what a GSUB + cmap dump of a font exposes:
// per-script feature index lists, per-feature lookup index lists, per-lookup
// sub-table contents, and the character-to-glyph map. Glyphs are referred to
// by name, as font tools emit them; Load interns names into glyph indices.
//
// The tree is treated as read-only by Load.
type TableTree struct {
	Scripts    []ScriptRecord  // script records, font order
	Features   []FeatureRecord // feature records, font order
	Lookups    []LookupRecord  // lookup list, font order; position = lookup index
	CMap       []CMapEntry     // character map entries
	GlyphOrder []string        // optional glyph names in font order; determines glyph indices
}

// ScriptRecord links a script tag to the indices of its feature records.
type ScriptRecord struct {
	Tag      Tag
	Features []int // indices into TableTree.Features, font order
}

// FeatureRecord links a feature tag to the indices of its lookups.
type FeatureRecord struct {
	Tag     Tag
	Lookups []int // indices into TableTree.Lookups, font order
}

// CMapEntry maps one Unicode scalar value to a glyph name.
type CMapEntry struct {
	Code rune
	Name string
}

// Lookup types exercised by the substitution engine, numbered as in the
// OpenType GSUB specification.
const (
	LookupTypeSingle       = 1 // one glyph replaces another
	LookupTypeLigature     = 4 // glyph run collapses to one glyph
	LookupTypeClassContext = 5 // class of glyph pair selects a nested single
	LookupTypeChainContext = 6 // lookahead/backtrack gated nested single
)

// LookupRecord is one lookup of the tree's lookup list. Type selects which of
// the rule slices is meaningful.
type LookupRecord struct {
	Type         int
	Single       []SingleSubstRecord  // type 1
	LigatureSets []LigatureSetRecord  // type 4
	ClassDefs    []ClassDefRecord     // type 5
	ClassSets    []ClassSetRecord     // type 5
	ChainContext []ChainContextRecord // type 6
}

// SingleSubstRecord replaces glyph In with glyph Out.
type SingleSubstRecord struct {
	In  string
	Out string
}

// LigatureSetRecord collects the ligature rules anchored at one glyph.
type LigatureSetRecord struct {
	Glyph     string // anchor: first glyph of every ligature in this set
	Ligatures []LigatureRecord
}

// LigatureRecord describes one ligature: anchor glyph followed by the exact
// ordered component run collapses to Glyph.
type LigatureRecord struct {
	Components []string // 1–3 component glyphs following the anchor
	Glyph      string   // resulting ligature glyph
}

// ChainContextRecord is a chained-context rule: the input coverage (one or
// two glyph sets, anchored at the match position) matches only when the
// declared lookahead and/or backtrack glyphs are present; on match the target
// lookup (a type 1) is applied at the last input glyph.
type ChainContextRecord struct {
	Input        [][]string // 1 or 2 coverage sets
	Lookahead    []string   // glyph set following the input run; empty = no condition
	Backtrack    []string   // glyph set preceding the input run; empty = no condition
	TargetLookup int        // index into TableTree.Lookups; must be a type 1
}

// ClassDefRecord assigns a class id to a glyph. Glyphs without an entry have
// class 0.
type ClassDefRecord struct {
	Glyph string
	Class int
}

// ClassSetRecord collects the context rules for one first-glyph class.
type ClassSetRecord struct {
	Class int
	Rules []ClassRuleRecord
}

// ClassRuleRecord fires when the current glyph has the set's class and the
// following glyph has class NextClass; the target lookup (a type 1) then
// rewrites the following glyph.
type ClassRuleRecord struct {
	NextClass    int
	TargetLookup int // index into TableTree.Lookups; must be a type 1
}
