package ot

// GlyphIndex is a glyph index in a font. It is opaque and font-scoped: indices
// are stable for the lifetime of one font load, but carry no meaning across
// fonts.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType spec as an array of four uint8s (length =
// 32 bits), used to identify a table, script, language system or feature.
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return MakeTag([]byte(t))
}

func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	})
}

// --- Glyph tokens ----------------------------------------------------------

// Sentinel enumerates the closed set of control/format stand-ins which may
// occur in a token sequence instead of a concrete glyph.
type Sentinel uint8

const (
	NotSentinel Sentinel = iota // token is a concrete glyph
	SentinelLineFeed
	SentinelCarriageReturn
	SentinelSpace
	SentinelZWJ
	SentinelZWNJ
	SentinelLineBreak
	SentinelParaSeparator
	SentinelUnmapped // codepoint missing from the character map; passed through
)

func (s Sentinel) String() string {
	switch s {
	case NotSentinel:
		return "glyph"
	case SentinelLineFeed:
		return "LF"
	case SentinelCarriageReturn:
		return "CR"
	case SentinelSpace:
		return "SPACE"
	case SentinelZWJ:
		return "ZWJ"
	case SentinelZWNJ:
		return "ZWNJ"
	case SentinelLineBreak:
		return "LINEBREAK"
	case SentinelParaSeparator:
		return "PARASEP"
	case SentinelUnmapped:
		return "UNMAPPED"
	}
	return "INVALID"
}

// GlyphToken is the unit the conversion pipeline operates on: either a
// concrete glyph of the loaded font, or a control sentinel. Unmapped tokens
// carry the original codepoint for verbatim pass-through at serialization.
//
// Sentinels never participate in substitution matching.
type GlyphToken struct {
	Glyph GlyphIndex // valid iff Sent == NotSentinel
	Sent  Sentinel
	Rune  rune // original codepoint for SentinelUnmapped
}

// GlyphOf wraps a glyph index as a token.
func GlyphOf(g GlyphIndex) GlyphToken {
	return GlyphToken{Glyph: g}
}

// SentinelOf wraps a sentinel as a token. r is the originating codepoint and
// only relevant for SentinelUnmapped.
func SentinelOf(s Sentinel, r rune) GlyphToken {
	return GlyphToken{Sent: s, Rune: r}
}

// IsGlyph reports whether the token is a concrete glyph.
func (t GlyphToken) IsGlyph() bool {
	return t.Sent == NotSentinel
}

// --- Glyph sets ------------------------------------------------------------

// GlyphSet is a coverage set of glyphs, as used by chain-context lookups for
// input, lookahead and backtrack coverage.
type GlyphSet map[GlyphIndex]struct{}

// NewGlyphSet builds a set from a list of glyph indices.
func NewGlyphSet(glyphs ...GlyphIndex) GlyphSet {
	s := make(GlyphSet, len(glyphs))
	for _, g := range glyphs {
		s[g] = struct{}{}
	}
	return s
}

// Contains reports set membership. A nil set contains nothing.
func (s GlyphSet) Contains(g GlyphIndex) bool {
	_, ok := s[g]
	return ok
}
