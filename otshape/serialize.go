package otshape

import (
	"fmt"
	"strings"

	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otlayout"
)

// Serialize renders a token sequence as the external glyph-reference string:
// each glyph becomes "g+" followed by its hexadecimal glyph index, control
// sentinels become literal characters, joiners vanish, and unmapped
// characters pass through verbatim.
func Serialize(buf otlayout.TokenBuffer) string {
	var sb strings.Builder
	for i := 0; i < buf.Len(); i++ {
		tok := buf.At(i)
		switch tok.Sent {
		case ot.NotSentinel:
			fmt.Fprintf(&sb, "g+%x", uint16(tok.Glyph))
		case ot.SentinelLineFeed:
			sb.WriteByte('\n')
		case ot.SentinelCarriageReturn:
			sb.WriteByte('\r')
		case ot.SentinelSpace:
			sb.WriteByte(' ')
		case ot.SentinelZWJ, ot.SentinelZWNJ:
			// joiners only steer substitution, they produce no output
		case ot.SentinelLineBreak:
			sb.WriteString("u+2028")
		case ot.SentinelParaSeparator:
			sb.WriteString("u+2029")
		case ot.SentinelUnmapped:
			sb.WriteRune(tok.Rune)
		}
	}
	return sb.String()
}
