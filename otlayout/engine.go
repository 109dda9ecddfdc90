package otlayout

import "github.com/glyphrun/otsubst/ot"

// Options selects which lookup kinds the substitution engine applies.
// Reordering-only runs disable all three.
type Options struct {
	Ligatures    bool // apply ligature lookups (GSUB type 4)
	ChainContext bool // apply chain context lookups (GSUB type 6)
	ClassContext bool // apply class context lookups (GSUB type 5)
}

// AllSubstitutions enables every lookup kind the engine supports.
var AllSubstitutions = Options{Ligatures: true, ChainContext: true, ClassContext: true}

// SubstReport summarizes one Substitute run.
type SubstReport struct {
	Passes        int  // number of full scans over the buffer
	Substitutions int  // number of lookup applications
	CapReached    bool // true if the pass cap stopped iteration before a fixed point
}

// Substitute applies the active lookups to one word's tokens until no lookup
// matches anymore. Each pass scans the buffer left to right; at every position
// the active lookups are tried in their declared priority order, and the first
// match wins for that position. A ligature splice resumes the scan at the
// result glyph, so its output is immediately visible to further lookups within
// the same pass; contextual rewrites resume one position later to keep a
// single pass from re-matching its own output.
//
// Passes repeat until a full scan applies nothing. Ligatures strictly shrink
// the buffer and contextual rewrites are single-glyph, but a font may still
// declare mutually feeding rules, so iteration is capped at the initial token
// count; a capped run is reported, not an error.
//
// Lookups with reordering feature roles (reph, rakaar) are skipped here; the
// shaping layer consumes their rules directly.
func Substitute(buf TokenBuffer, model *ot.TableModel, active ActiveLookups,
	opts Options) (TokenBuffer, SubstReport) {
	//
	var report SubstReport
	if buf == nil || buf.Len() == 0 || model == nil {
		return buf, report
	}
	skip := make(map[int]bool, len(active.Reph)+len(active.Rakaar))
	for _, li := range active.Reph {
		skip[li] = true
	}
	for _, li := range active.Rakaar {
		skip[li] = true
	}
	maxPasses := buf.Len()
	for report.Passes < maxPasses {
		report.Passes++
		changed := false
		pos := 0
		for pos < buf.Len() {
			rpos, ok, out := substituteAt(buf, model, active, opts, skip, pos)
			buf = out
			if ok {
				report.Substitutions++
				changed = true
				pos = rpos
				continue
			}
			pos++
		}
		if !changed {
			return buf, report
		}
	}
	report.CapReached = true
	tracer().Infof("substitution cap of %d passes reached, stopping", maxPasses)
	return buf, report
}

// substituteAt tries the active lookups at pos, in declared order, and applies
// the first one that matches.
func substituteAt(buf TokenBuffer, model *ot.TableModel, active ActiveLookups,
	opts Options, skip map[int]bool, pos int) (int, bool, TokenBuffer) {
	//
	if !buf.At(pos).IsGlyph() {
		return pos, false, buf
	}
	for _, li := range active.Indices {
		if skip[li] {
			continue
		}
		lk := model.Lookup(li)
		if lk == nil {
			continue
		}
		var (
			rpos int
			ok   bool
			out  TokenBuffer
		)
		switch lk.Kind {
		case ot.KindLigature:
			if !opts.Ligatures {
				continue
			}
			rpos, ok, out, _ = applyLigatureAt(lk, buf, pos)
		case ot.KindChainContext:
			if !opts.ChainContext {
				continue
			}
			rpos, ok, out, _ = applyChainContextAt(model, lk, buf, pos)
		case ot.KindClassContext:
			if !opts.ClassContext {
				continue
			}
			rpos, ok, out, _ = applyClassContextAt(model, lk, buf, pos)
		default:
			continue
		}
		if ok {
			return rpos, true, out
		}
	}
	return pos, false, buf
}
