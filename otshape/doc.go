/*
Package otshape converts Unicode text into font glyph references, applying
script-specific reordering and GSUB substitution per word.

The pipeline is: NFC-normalize, segment into words at Space/CR/LF boundaries,
map codepoints to glyph tokens through the character map, run the reordering
passes (pre-base matra swap, rakaar fusion, reph relocation), run the
substitution engine, and serialize the result as "g+…" glyph references with
control sentinels passed through as literal characters.

Script particulars live in ScriptProfile values. A profile is plain data —
tags, matra tables, vowel buckets, enable flags — passed explicitly into the
shaper; nothing in this package is process-global state.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otshape

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsubst.shaper'
func tracer() tracing.Trace {
	return tracing.Select("otsubst.shaper")
}

// errShaper produces user level errors for the shaping pipeline.
func errShaper(format string, args ...interface{}) error {
	return fmt.Errorf("shaper: "+format, args...)
}
