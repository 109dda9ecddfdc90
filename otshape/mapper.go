package otshape

import (
	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otlayout"
)

// sentinelFor recognizes the fixed set of control/format codepoints which map
// to sentinel tokens instead of glyphs, no matter what the character map says.
var sentinelFor = map[rune]ot.Sentinel{
	0x000a: ot.SentinelLineFeed,
	0x000d: ot.SentinelCarriageReturn,
	0x0020: ot.SentinelSpace,
	0x2008: ot.SentinelSpace, // punctuation space
	0x2009: ot.SentinelSpace, // thin space
	0x200c: ot.SentinelZWNJ,
	0x200d: ot.SentinelZWJ,
	0x2028: ot.SentinelLineBreak,
	0x2029: ot.SentinelParaSeparator,
}

// MapWord maps one word's codepoints to glyph tokens through the model's
// character map. Control codepoints become their sentinel; a character-map
// miss becomes an Unmapped token carrying the codepoint, to be passed through
// verbatim at serialization. Misses are returned for diagnostics — a word is
// never truncated by them.
//
// Mapping is purely local, with no cross-character state.
func MapWord(runes []rune, model *ot.TableModel) (otlayout.TokenSlice, []rune) {
	tokens := make(otlayout.TokenSlice, 0, len(runes))
	var unmapped []rune
	for _, r := range runes {
		if s, ok := sentinelFor[r]; ok {
			tokens = append(tokens, ot.SentinelOf(s, r))
			continue
		}
		g, ok := model.CharToGlyph(r)
		if !ok {
			tracer().Debugf("codepoint U+%04X not in character map, passing through", r)
			tokens = append(tokens, ot.SentinelOf(ot.SentinelUnmapped, r))
			unmapped = append(unmapped, r)
			continue
		}
		tokens = append(tokens, ot.GlyphOf(g))
	}
	return tokens, unmapped
}
