package ot

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ParseTTX decodes a fontTools TTX XML dump (tables GSUB and cmap, plus the
// optional GlyphOrder) into a TableTree. TTX is the interchange format font
// tools emit for inspection; a dump produced with
//
//	ttx -t GSUB -t cmap font.ttf
//
// is sufficient input for Load. Unknown elements and lookup types outside the
// engine's scope are skipped.
func ParseTTX(r io.Reader) (*TableTree, error) {
	root, err := decodeElementTree(r)
	if err != nil {
		return nil, err
	}
	tree := &TableTree{}
	parseTTXGlyphOrder(root, tree)
	parseTTXCMap(root, tree)
	if err := parseTTXScripts(root, tree); err != nil {
		return nil, err
	}
	if err := parseTTXLookups(root, tree); err != nil {
		return nil, err
	}
	tracer().Debugf("TTX decoded: %d scripts, %d features, %d lookups, %d cmap entries",
		len(tree.Scripts), len(tree.Features), len(tree.Lookups), len(tree.CMap))
	return tree, nil
}

// --- Generic element tree --------------------------------------------------

// TTX nests the same record elements at varying depths (FeatureIndex may sit
// under DefaultLangSys or under a LangSysRecord), so we decode into a plain
// element tree and search it by local name, the way fontTools clients do.
type xmlElement struct {
	name     string
	attrs    map[string]string
	children []*xmlElement
}

func decodeElementTree(r io.Reader) (*xmlElement, error) {
	dec := xml.NewDecoder(r)
	root := &xmlElement{name: "#document"}
	stack := []*xmlElement{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("TTX decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(root.children) == 0 {
		return nil, errTableFormat("TTX document is empty")
	}
	return root, nil
}

func (el *xmlElement) attr(name string) string {
	return el.attrs[name]
}

func (el *xmlElement) attrInt(name string, def int) int {
	v, err := strconv.Atoi(el.attr(name))
	if err != nil {
		return def
	}
	return v
}

// findAll collects every descendant with the given local name, depth-first.
func (el *xmlElement) findAll(name string) []*xmlElement {
	var out []*xmlElement
	for _, c := range el.children {
		if c.name == name {
			out = append(out, c)
		}
		out = append(out, c.findAll(name)...)
	}
	return out
}

// first returns the first descendant with the given local name, or nil.
func (el *xmlElement) first(name string) *xmlElement {
	for _, c := range el.children {
		if c.name == name {
			return c
		}
		if hit := c.first(name); hit != nil {
			return hit
		}
	}
	return nil
}

// --- TTX sections ----------------------------------------------------------

func parseTTXGlyphOrder(root *xmlElement, tree *TableTree) {
	for _, gid := range root.findAll("GlyphID") {
		if name := gid.attr("name"); name != "" {
			tree.GlyphOrder = append(tree.GlyphOrder, name)
		}
	}
}

func parseTTXCMap(root *xmlElement, tree *TableTree) {
	seen := make(map[rune]bool)
	for _, m := range root.findAll("map") {
		code, err := parseCodepoint(m.attr("code"))
		if err != nil {
			continue
		}
		name := m.attr("name")
		if name == "" || seen[code] {
			continue // multiple cmap subtables repeat entries; first one wins
		}
		seen[code] = true
		tree.CMap = append(tree.CMap, CMapEntry{Code: code, Name: name})
	}
}

func parseCodepoint(s string) (rune, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}

func parseTTXScripts(root *xmlElement, tree *TableTree) error {
	for _, sr := range root.findAll("ScriptRecord") {
		tag := sr.first("ScriptTag")
		if tag == nil {
			return errTableFormat("ScriptRecord without ScriptTag")
		}
		rec := ScriptRecord{Tag: T(tag.attr("value"))}
		for _, fi := range sr.findAll("FeatureIndex") {
			rec.Features = append(rec.Features, fi.attrInt("value", -1))
		}
		tree.Scripts = append(tree.Scripts, rec)
	}
	for _, fr := range root.findAll("FeatureRecord") {
		tag := fr.first("FeatureTag")
		if tag == nil {
			return errTableFormat("FeatureRecord without FeatureTag")
		}
		rec := FeatureRecord{Tag: T(tag.attr("value"))}
		for _, li := range fr.findAll("LookupListIndex") {
			rec.Lookups = append(rec.Lookups, li.attrInt("value", -1))
		}
		tree.Features = append(tree.Features, rec)
	}
	return nil
}

func parseTTXLookups(root *xmlElement, tree *TableTree) error {
	lookupList := root.first("LookupList")
	if lookupList == nil {
		return nil // Load will reject the empty tree
	}
	lookups := lookupList.findAll("Lookup")
	// index attributes pin lookup positions; they are usually already sorted
	sort.SliceStable(lookups, func(i, j int) bool {
		return lookups[i].attrInt("index", 0) < lookups[j].attrInt("index", 0)
	})
	maxInx := -1
	for _, lk := range lookups {
		if inx := lk.attrInt("index", -1); inx > maxInx {
			maxInx = inx
		}
	}
	if maxInx < 0 {
		maxInx = len(lookups) - 1
	}
	tree.Lookups = make([]LookupRecord, maxInx+1)
	for pos, lk := range lookups {
		inx := lk.attrInt("index", pos)
		if inx < 0 || inx >= len(tree.Lookups) {
			continue
		}
		typeEl := lk.first("LookupType")
		if typeEl == nil {
			continue
		}
		rec := LookupRecord{Type: typeEl.attrInt("value", 0)}
		switch rec.Type {
		case LookupTypeSingle:
			for _, s := range lk.findAll("Substitution") {
				rec.Single = append(rec.Single, SingleSubstRecord{
					In:  s.attr("in"),
					Out: s.attr("out"),
				})
			}
		case LookupTypeLigature:
			for _, set := range lk.findAll("LigatureSet") {
				lsr := LigatureSetRecord{Glyph: set.attr("glyph")}
				for _, lig := range set.findAll("Ligature") {
					lsr.Ligatures = append(lsr.Ligatures, LigatureRecord{
						Components: splitComponents(lig.attr("components")),
						Glyph:      lig.attr("glyph"),
					})
				}
				rec.LigatureSets = append(rec.LigatureSets, lsr)
			}
		case LookupTypeClassContext:
			rec.ClassDefs, rec.ClassSets = parseTTXClassContext(lk)
		case LookupTypeChainContext:
			for _, sub := range lk.findAll("ChainContextSubst") {
				if ccr, ok := parseTTXChainContext(sub); ok {
					rec.ChainContext = append(rec.ChainContext, ccr)
				}
			}
		}
		tree.Lookups[inx] = rec
	}
	return nil
}

func splitComponents(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTTXClassContext(lk *xmlElement) ([]ClassDefRecord, []ClassSetRecord) {
	var defs []ClassDefRecord
	for _, cd := range lk.findAll("ClassDef") {
		glyph := cd.attr("glyph")
		if glyph == "" {
			continue // container element, not an entry
		}
		defs = append(defs, ClassDefRecord{
			Glyph: glyph,
			Class: cd.attrInt("class", 0),
		})
	}
	var sets []ClassSetRecord
	for _, scs := range lk.findAll("SubClassSet") {
		if scs.attr("empty") == "1" {
			continue
		}
		set := ClassSetRecord{Class: scs.attrInt("index", 0)}
		for _, rule := range scs.findAll("SubClassRule") {
			cls := rule.first("Class")
			target := rule.first("LookupListIndex")
			if cls == nil || target == nil {
				continue
			}
			set.Rules = append(set.Rules, ClassRuleRecord{
				NextClass:    cls.attrInt("value", 0),
				TargetLookup: target.attrInt("value", -1),
			})
		}
		if len(set.Rules) > 0 {
			sets = append(sets, set)
		}
	}
	return defs, sets
}

func parseTTXChainContext(sub *xmlElement) (ChainContextRecord, bool) {
	var rec ChainContextRecord
	for _, cov := range sub.findAll("InputCoverage") {
		rec.Input = append(rec.Input, coverageGlyphs(cov))
	}
	for _, cov := range sub.findAll("LookAheadCoverage") {
		rec.Lookahead = append(rec.Lookahead, coverageGlyphs(cov)...)
	}
	for _, cov := range sub.findAll("BacktrackCoverage") {
		rec.Backtrack = append(rec.Backtrack, coverageGlyphs(cov)...)
	}
	rec.TargetLookup = -1
	if slr := sub.first("SubstLookupRecord"); slr != nil {
		if li := slr.first("LookupListIndex"); li != nil {
			rec.TargetLookup = li.attrInt("value", -1)
		}
	}
	if len(rec.Input) == 0 || rec.TargetLookup < 0 {
		return rec, false
	}
	return rec, true
}

func coverageGlyphs(cov *xmlElement) []string {
	var out []string
	for _, g := range cov.findAll("Glyph") {
		if v := g.attr("value"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
