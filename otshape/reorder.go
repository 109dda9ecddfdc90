package otshape

import (
	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otlayout"
)

// reorderer holds a profile's reordering tables resolved to glyph indices of
// one font. Profile codepoints absent from the font's character map simply
// never trigger.
type reorderer struct {
	singleMatra ot.GlyphSet
	doubleMatra []doubleMatraGlyphs
	aboveRight  ot.GlyphSet
	below       ot.GlyphSet
	rephGlyph   ot.GlyphIndex
	viramaGlyph ot.GlyphIndex
	rephResult  ot.GlyphIndex
	rephOK      bool
	rakaarRules map[ot.GlyphIndex][]ot.Ligature

	matraSwap bool
	rakaar    bool
	reph      bool
}

type doubleMatraGlyphs struct {
	trigger ot.GlyphIndex
	pre     ot.GlyphIndex
	post    ot.GlyphIndex
}

func newReorderer(model *ot.TableModel, profile ScriptProfile,
	active otlayout.ActiveLookups) *reorderer {
	//
	r := &reorderer{
		singleMatra: resolveSet(model, profile.SingleMatra),
		aboveRight:  resolveSet(model, profile.VowelAboveRight),
		below:       resolveSet(model, profile.VowelBelow),
		matraSwap:   profile.MatraSwap,
	}
	for _, dm := range profile.DoubleMatra {
		trigger, ok1 := model.CharToGlyph(dm.Trigger)
		pre, ok2 := model.CharToGlyph(dm.PreInsert)
		post, ok3 := model.CharToGlyph(dm.PostAppend)
		if !ok1 || !ok2 || !ok3 {
			tracer().Infof("double matra rule for U+%04X not coverable by font, dropped", dm.Trigger)
			continue
		}
		r.doubleMatra = append(r.doubleMatra, doubleMatraGlyphs{trigger: trigger, pre: pre, post: post})
	}
	if profile.RakaarFusion && len(active.Rakaar) > 0 {
		r.rakaarRules = otlayout.LigatureRules(model, active.Rakaar)
		r.rakaar = len(r.rakaarRules) > 0
	}
	if profile.RephReordering && len(active.Reph) > 0 {
		r.setupReph(model, profile, active)
	}
	return r
}

// setupReph resolves the repositioner pair and the reph result glyph. The
// result comes from the font's reph-form ligature rule anchored at the reph
// consonant with the virama as its first component.
func (r *reorderer) setupReph(model *ot.TableModel, profile ScriptProfile,
	active otlayout.ActiveLookups) {
	//
	reph, ok1 := model.CharToGlyph(profile.Reph)
	virama, ok2 := model.CharToGlyph(profile.Virama)
	if !ok1 || !ok2 {
		tracer().Infof("font does not map reph/virama codepoints, reph reordering disabled")
		return
	}
	rules := otlayout.LigatureRules(model, active.Reph)
	for _, rule := range rules[reph] {
		if len(rule.Components) >= 1 && rule.Components[0] == virama {
			r.rephGlyph = reph
			r.viramaGlyph = virama
			r.rephResult = rule.Result
			r.reph = true
			return
		}
	}
	tracer().Infof("no reph-form rule for the repositioner pair, reph reordering disabled")
}

func resolveSet(model *ot.TableModel, runes []rune) ot.GlyphSet {
	set := make(ot.GlyphSet, len(runes))
	for _, r := range runes {
		if g, ok := model.CharToGlyph(r); ok {
			set[g] = struct{}{}
		}
	}
	return set
}

// Reorder runs the script-specific structural passes over one word, before
// general substitution: pre-base matra swap, then rakaar fusion, then reph
// relocation. Each pass is a single left-to-right scan which resumes from the
// mutation point. The returned count tallies repositioners left untouched
// because no consonant cluster followed them.
func Reorder(buf otlayout.TokenBuffer, model *ot.TableModel, profile ScriptProfile,
	active otlayout.ActiveLookups) (otlayout.TokenBuffer, int) {
	//
	return newReorderer(model, profile, active).reorder(buf)
}

func (r *reorderer) reorder(buf otlayout.TokenBuffer) (otlayout.TokenBuffer, int) {
	if r.matraSwap {
		buf = r.swapMatras(buf)
	}
	if r.rakaar {
		buf = r.fuseRakaars(buf)
	}
	misses := 0
	if r.reph {
		buf, misses = r.relocateRephs(buf)
	}
	return buf, misses
}

// swapMatras moves pre-base vowel signs in front of their consonant. A
// single-part matra swaps with the preceding token; a two-part matra inserts
// its pre-base glyph before the consonant and rewrites itself to its
// post-base glyph.
func (r *reorderer) swapMatras(buf otlayout.TokenBuffer) otlayout.TokenBuffer {
	pos := 1
	for pos < buf.Len() {
		tok := buf.At(pos)
		prev := buf.At(pos - 1)
		if !tok.IsGlyph() || !prev.IsGlyph() {
			pos++
			continue
		}
		if r.singleMatra.Contains(tok.Glyph) {
			buf.Set(pos-1, tok)
			buf.Set(pos, prev)
			tracer().Debugf("swapped pre-base matra %d before consonant at pos %d", tok.Glyph, pos-1)
			pos++
			continue
		}
		if dm, ok := r.doubleMatraFor(tok.Glyph); ok {
			buf.Set(pos, ot.GlyphOf(dm.post))
			buf = buf.Insert(pos-1, []ot.GlyphToken{ot.GlyphOf(dm.pre)})
			tracer().Debugf("split two-part matra %d at pos %d", tok.Glyph, pos)
			pos += 2
			continue
		}
		pos++
	}
	return buf
}

func (r *reorderer) doubleMatraFor(g ot.GlyphIndex) (doubleMatraGlyphs, bool) {
	for _, dm := range r.doubleMatra {
		if dm.trigger == g {
			return dm, true
		}
	}
	return doubleMatraGlyphs{}, false
}

// fuseRakaars collapses below-base conjunct runs: a registered anchor glyph
// followed by a rule's exact two-glyph component pattern becomes the rule's
// single result glyph.
func (r *reorderer) fuseRakaars(buf otlayout.TokenBuffer) otlayout.TokenBuffer {
	pos := 0
	for pos < buf.Len() {
		tok := buf.At(pos)
		if !tok.IsGlyph() {
			pos++
			continue
		}
		for _, rule := range r.rakaarRules[tok.Glyph] {
			if len(rule.Components) != 2 {
				continue
			}
			if !glyphsAt(buf, pos+1, rule.Components) {
				continue
			}
			buf = buf.Replace(pos, pos+3, []ot.GlyphToken{ot.GlyphOf(rule.Result)})
			tracer().Debugf("rakaar fusion at pos %d yields glyph %d", pos, rule.Result)
			break
		}
		pos++
	}
	return buf
}

// glyphsAt reports whether the glyph run starting at pos equals want.
func glyphsAt(buf otlayout.TokenBuffer, pos int, want []ot.GlyphIndex) bool {
	if pos+len(want) > buf.Len() {
		return false
	}
	for i, g := range want {
		tok := buf.At(pos + i)
		if !tok.IsGlyph() || tok.Glyph != g {
			return false
		}
	}
	return true
}

// relocateRephs moves a repositioner pair (reph consonant + virama) found
// before a consonant to just after that consonant, replaced by the reph
// result glyph. The glyph following the consonant steers placement: a vowel
// sign attaching above or right takes the reph mark between consonant and
// vowel; a vowel sign attaching below takes the reph mark after the vowel;
// anything else puts the reph mark directly after the consonant. A
// repositioner with no following consonant cluster — end of word, a sentinel,
// an unmapped character — stays untouched and counts as a boundary miss.
func (r *reorderer) relocateRephs(buf otlayout.TokenBuffer) (otlayout.TokenBuffer, int) {
	misses := 0
	pos := 0
	for pos < buf.Len() {
		tok := buf.At(pos)
		if !tok.IsGlyph() || tok.Glyph != r.rephGlyph {
			pos++
			continue
		}
		if !withinGlyphRun(buf, pos+1) || buf.At(pos+1).Glyph != r.viramaGlyph {
			pos++
			continue
		}
		// repositioner pair at pos; the consonant must follow, and so must a
		// continuation of the cluster — a trailing consonant is word-final
		if !withinGlyphRun(buf, pos+2) || !withinGlyphRun(buf, pos+3) {
			tracer().Debugf("repositioner at pos %d has no consonant cluster, left in place", pos)
			misses++
			pos++
			continue
		}
		vowel := buf.At(pos + 3).Glyph
		reph := ot.GlyphOf(r.rephResult)
		switch {
		case r.aboveRight.Contains(vowel):
			// [C, reph, vowel]
			buf = buf.Delete(pos, pos+2)
			buf = buf.Insert(pos+1, []ot.GlyphToken{reph})
			pos += 2
		case r.below.Contains(vowel):
			// [C, vowel, reph]
			buf = buf.Delete(pos, pos+2)
			buf = buf.Insert(pos+2, []ot.GlyphToken{reph})
			pos += 3
		default:
			// [C, reph]
			buf = buf.Delete(pos, pos+2)
			buf = buf.Insert(pos+1, []ot.GlyphToken{reph})
			pos += 2
		}
		tracer().Debugf("relocated reph mark behind consonant at pos %d", pos-1)
	}
	return buf, misses
}

// withinGlyphRun reports whether pos addresses a concrete glyph token.
func withinGlyphRun(buf otlayout.TokenBuffer, pos int) bool {
	return pos >= 0 && pos < buf.Len() && buf.At(pos).IsGlyph()
}
