package otlayout

import "github.com/glyphrun/otsubst/ot"

// Lookup application. Each function tries to apply one lookup at buffer
// position pos and follows a common signature: it returns the position to
// resume scanning at, a success flag, the (possibly re-allocated) buffer, and
// an edit span when the buffer was spliced.
//
// Sentinel tokens never participate in matching: neither as input, nor as a
// component, nor as a lookahead/backtrack glyph.

// applySingleAt replaces the glyph at pos according to a single-substitution
// lookup.
func applySingleAt(lk *ot.Lookup, buf TokenBuffer, pos int) (int, bool, TokenBuffer, *EditSpan) {
	tok := buf.At(pos)
	if !tok.IsGlyph() {
		return pos, false, buf, nil
	}
	out, ok := lk.Single[tok.Glyph]
	if !ok {
		return pos, false, buf, nil
	}
	tracer().Debugf("single subst %d for %d at pos %d", out, tok.Glyph, pos)
	buf.Set(pos, ot.GlyphOf(out))
	return pos + 1, true, buf, &EditSpan{From: pos, To: pos + 1, Len: 1}
}

// applyLigatureAt matches the anchor glyph at pos followed by the exact
// ordered component run (1–3 glyphs) of one of the anchor's ligature rules.
// On match, the whole run is spliced down to the result glyph and scanning
// resumes at the result position, re-enabling further substitution there.
func applyLigatureAt(lk *ot.Lookup, buf TokenBuffer, pos int) (int, bool, TokenBuffer, *EditSpan) {
	tok := buf.At(pos)
	if !tok.IsGlyph() {
		return pos, false, buf, nil
	}
	rules, ok := lk.Ligatures[tok.Glyph]
	if !ok {
		return pos, false, buf, nil
	}
	for _, rule := range rules {
		if !componentsMatch(buf, pos+1, rule.Components) {
			continue
		}
		tracer().Debugf("ligature subst %d for %d+%v at pos %d",
			rule.Result, tok.Glyph, rule.Components, pos)
		buf = buf.Replace(pos, pos+1+len(rule.Components), []ot.GlyphToken{ot.GlyphOf(rule.Result)})
		return pos, true, buf, &EditSpan{From: pos, To: pos + 1 + len(rule.Components), Len: 1}
	}
	return pos, false, buf, nil
}

func componentsMatch(buf TokenBuffer, pos int, components []ot.GlyphIndex) bool {
	if pos+len(components) > buf.Len() {
		return false
	}
	for i, comp := range components {
		tok := buf.At(pos + i)
		if !tok.IsGlyph() || tok.Glyph != comp {
			return false
		}
	}
	return true
}

// applyChainContextAt matches one of the lookup's chain rules at pos: the
// input coverage run (1 or 2 glyphs) anchored at pos, the glyph immediately
// following the run against the lookahead coverage (if declared), and the
// glyph immediately preceding pos against the backtrack coverage (if
// declared). On match, the rule's target single lookup is invoked at the
// final glyph of the input run.
func applyChainContextAt(model *ot.TableModel, lk *ot.Lookup, buf TokenBuffer, pos int) (
	int, bool, TokenBuffer, *EditSpan) {
	//
	tok := buf.At(pos)
	if !tok.IsGlyph() {
		return pos, false, buf, nil
	}
	for _, rule := range lk.Chain {
		if !rule.Input[0].Contains(tok.Glyph) {
			continue
		}
		last := pos
		if len(rule.Input) == 2 {
			if !withinGlyphs(buf, pos+1) || !rule.Input[1].Contains(buf.At(pos+1).Glyph) {
				continue
			}
			last = pos + 1
		}
		if rule.Lookahead != nil {
			if !withinGlyphs(buf, last+1) || !rule.Lookahead.Contains(buf.At(last+1).Glyph) {
				continue
			}
		}
		if rule.Backtrack != nil {
			if !withinGlyphs(buf, pos-1) || !rule.Backtrack.Contains(buf.At(pos-1).Glyph) {
				continue
			}
		}
		target := model.Lookup(rule.TargetLookup)
		if target == nil || target.Kind != ot.KindSingle {
			continue
		}
		if rpos, ok, out, edit := applySingleAt(target, buf, last); ok {
			tracer().Debugf("chain context matched at pos %d, target lookup %d applied at %d",
				pos, rule.TargetLookup, last)
			return rpos, true, out, edit
		}
	}
	return pos, false, buf, nil
}

// withinGlyphs reports whether pos addresses a concrete glyph token.
func withinGlyphs(buf TokenBuffer, pos int) bool {
	return pos >= 0 && pos < buf.Len() && buf.At(pos).IsGlyph()
}

// applyClassContextAt matches the class of the glyph at pos combined with the
// class of the following glyph against the lookup's rules; the first matching
// rule's target single lookup rewrites the following glyph, not the current
// one. A glyph absent from the class map acts as uncovered for the current
// position and as class 0 for the following position, as the OpenType class
// definition prescribes.
func applyClassContextAt(model *ot.TableModel, lk *ot.Lookup, buf TokenBuffer, pos int) (
	int, bool, TokenBuffer, *EditSpan) {
	//
	tok := buf.At(pos)
	if !tok.IsGlyph() {
		return pos, false, buf, nil
	}
	cls, covered := lk.Classes[tok.Glyph]
	if !covered {
		return pos, false, buf, nil
	}
	if !withinGlyphs(buf, pos+1) {
		return pos, false, buf, nil
	}
	nextCls := lk.Classes[buf.At(pos+1).Glyph] // missing entry = class 0
	for _, rule := range lk.Rules {
		if rule.Class != cls || rule.NextClass != nextCls {
			continue
		}
		target := model.Lookup(rule.TargetLookup)
		if target == nil || target.Kind != ot.KindSingle {
			continue
		}
		if _, ok, out, edit := applySingleAt(target, buf, pos+1); ok {
			tracer().Debugf("class context (%d,%d) matched at pos %d, target lookup %d",
				cls, nextCls, pos, rule.TargetLookup)
			return pos + 1, true, out, edit
		}
	}
	return pos, false, buf, nil
}
