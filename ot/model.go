package ot

// TableModel is the normalized, indexed form of a TableTree. It owns all
// lookup and character-map data for the lifetime of one font load; downstream
// stages borrow read-only views per word and never mutate it.
type TableModel struct {
	scripts  map[Tag][]int // script tag → feature indices, font order
	features []FeatureView
	lookups  []Lookup
	cmap     map[rune]GlyphIndex
	names    []string // glyph index → name
	ids      map[string]GlyphIndex
	errors   []TableError
}

// FeatureView is the indexed view of one feature record.
type FeatureView struct {
	Tag     Tag
	Lookups []int // lookup indices, font order
}

// LookupKind tags the substitution kinds exercised by the engine.
type LookupKind uint8

const (
	KindNone         LookupKind = iota
	KindSingle                  // one glyph replaces another
	KindLigature                // anchor + component run collapses to one glyph
	KindChainContext            // lookahead/backtrack gated nested single
	KindClassContext            // class of glyph pair selects a nested single
)

func (k LookupKind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindLigature:
		return "ligature"
	case KindChainContext:
		return "chain-context"
	case KindClassContext:
		return "class-context"
	}
	return "none"
}

// Lookup is the typed union over the substitution kinds. Exactly the fields
// matching Kind are populated. Index is the stable position in the font's
// lookup list; it is the join key between feature resolution and the
// substitution engine.
type Lookup struct {
	Index     int
	Kind      LookupKind
	Single    map[GlyphIndex]GlyphIndex    // KindSingle
	Ligatures map[GlyphIndex][]Ligature    // KindLigature: anchor → rules, font order
	Chain     []ChainRule                  // KindChainContext
	Classes   map[GlyphIndex]uint16        // KindClassContext: glyph → class id
	Rules     []ClassRule                  // KindClassContext, font order
}

// Ligature is one normalized ligature rule: the anchor glyph (the map key in
// Lookup.Ligatures) followed by the exact ordered component run collapses to
// Result.
type Ligature struct {
	Components []GlyphIndex // 1–3 glyphs
	Result     GlyphIndex
}

// ChainRule is one normalized chained-context rule.
type ChainRule struct {
	Input        []GlyphSet // 1 or 2 coverage sets, anchored at the match position
	Lookahead    GlyphSet   // nil = no condition
	Backtrack    GlyphSet   // nil = no condition
	TargetLookup int        // always a KindSingle lookup
}

// ClassRule is one normalized class-context rule.
type ClassRule struct {
	Class        uint16 // class of the current glyph
	NextClass    uint16 // class of the following glyph
	TargetLookup int    // always a KindSingle lookup; rewrites the following glyph
}

// NumLookups returns the number of lookups in the model.
func (m *TableModel) NumLookups() int {
	return len(m.lookups)
}

// Lookup returns the lookup at index inx, or nil if out of range.
func (m *TableModel) Lookup(inx int) *Lookup {
	if inx < 0 || inx >= len(m.lookups) {
		return nil
	}
	return &m.lookups[inx]
}

// ScriptFeatures returns the feature indices declared for a script tag,
// preserving font order.
func (m *TableModel) ScriptFeatures(script Tag) ([]int, bool) {
	feats, ok := m.scripts[script]
	return feats, ok
}

// Feature returns the feature view at index inx, or a zero view.
func (m *TableModel) Feature(inx int) (FeatureView, bool) {
	if inx < 0 || inx >= len(m.features) {
		return FeatureView{}, false
	}
	return m.features[inx], true
}

// CharToGlyph maps a Unicode scalar value to its glyph index via the
// character map. A miss returns ok=false; callers pass the character through
// unchanged in that case (it is never silently dropped).
func (m *TableModel) CharToGlyph(r rune) (GlyphIndex, bool) {
	g, ok := m.cmap[r]
	return g, ok
}

// GlyphName returns the interned name of a glyph index, or "" if unknown.
func (m *TableModel) GlyphName(g GlyphIndex) string {
	if int(g) >= len(m.names) {
		return ""
	}
	return m.names[g]
}

// GlyphID returns the interned index for a glyph name.
func (m *TableModel) GlyphID(name string) (GlyphIndex, bool) {
	g, ok := m.ids[name]
	return g, ok
}

// Errors returns all non-fatal diagnostics accumulated during loading.
func (m *TableModel) Errors() []TableError {
	if m.errors == nil {
		return []TableError{}
	}
	return m.errors
}
