package otshape

import (
	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otlayout"
	"golang.org/x/text/unicode/norm"
)

// ShapeReport accumulates per-run diagnostics. None of its conditions abort
// shaping; output is always emitted.
type ShapeReport struct {
	Words          int    // words processed
	Substitutions  int    // lookup applications across all words
	Unmapped       []rune // codepoints missing from the character map, passed through
	BoundaryMisses int    // repositioners left in place for lack of a consonant cluster
	CapHits        int    // words whose substitution loop hit the iteration cap
}

func (rep *ShapeReport) merge(other ShapeReport) {
	rep.Words += other.Words
	rep.Substitutions += other.Substitutions
	rep.Unmapped = append(rep.Unmapped, other.Unmapped...)
	rep.BoundaryMisses += other.BoundaryMisses
	rep.CapHits += other.CapHits
}

// Shaper converts text to glyph references for one font and one script
// profile. It is single-threaded and deterministic: words are processed
// independently, in input order, with no state carried across words.
type Shaper struct {
	model   *ot.TableModel
	profile ScriptProfile
	active  otlayout.ActiveLookups
	reord   *reorderer
	opts    otlayout.Options
}

// NewShaper resolves the profile's script against the font's feature index.
// It fails fast, wrapping ot.ErrNoActiveScript, when the font declares
// neither the preferred nor the fallback script tag — shaping would silently
// emit raw characters otherwise.
func NewShaper(model *ot.TableModel, profile ScriptProfile) (*Shaper, error) {
	if model == nil {
		return nil, errShaper("no table model")
	}
	active, err := otlayout.Resolve(model, profile.Script, profile.ScriptFallback)
	if err != nil {
		return nil, err
	}
	sh := &Shaper{
		model:   model,
		profile: profile,
		active:  active,
		reord:   newReorderer(model, profile, active),
		opts:    profile.SubstOptions(),
	}
	tracer().Infof("shaper ready for script '%s' (%s)", active.Script, profile.Language)
	return sh, nil
}

// Profile returns the profile the shaper was built with.
func (sh *Shaper) Profile() ScriptProfile {
	return sh.profile
}

// Shape converts text into the glyph-reference string. The input is
// NFC-normalized, segmented into words, and each word runs through
// map → reorder → substitute → serialize. Word boundaries are preserved
// verbatim; output word order equals input order.
func (sh *Shaper) Shape(text string) (string, ShapeReport) {
	text = norm.NFC.String(text)
	var out []byte
	var report ShapeReport
	for _, word := range SegmentWords(text) {
		runes := word.Runes
		if word.Boundary != 0 {
			runes = append(runes, word.Boundary)
		}
		shaped, rep := sh.ShapeWord(runes)
		report.merge(rep)
		out = append(out, shaped...)
	}
	tracer().Infof("shaped %d words, %d substitutions", report.Words, report.Substitutions)
	return string(out), report
}

// ShapeWord runs the per-word pipeline on one word's codepoints (including a
// trailing boundary codepoint, if any). Exposed for fine-grained use; Shape
// is the usual entry point.
func (sh *Shaper) ShapeWord(runes []rune) (string, ShapeReport) {
	report := ShapeReport{Words: 1}
	if len(runes) == 0 {
		return "", report
	}
	tokens, unmapped := MapWord(runes, sh.model)
	report.Unmapped = unmapped
	var buf otlayout.TokenBuffer = tokens
	buf, misses := sh.reord.reorder(buf)
	report.BoundaryMisses = misses
	buf, subst := otlayout.Substitute(buf, sh.model, sh.active, sh.opts)
	report.Substitutions = subst.Substitutions
	if subst.CapReached {
		report.CapHits++
	}
	return Serialize(buf), report
}
