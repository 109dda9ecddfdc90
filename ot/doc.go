/*
Package ot holds the in-memory model of the font substitution tables which
drive glyph conversion.

The package does not read font binaries. An external font-table reader (for
example a fontTools TTX dump, see ParseTTX) supplies a structured TableTree
with scripts, features, lookups and the character map. Load normalizes that
tree into a TableModel: an immutable, indexed representation with stable
lookup indices, glyph-name interning and eagerly resolved control sentinels.

The TableModel is built once per font load and is treated as read-only by all
downstream stages. Lookup indices assigned here are the join key between
feature resolution (package otlayout) and substitution.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsubst.tables'
func tracer() tracing.Trace {
	return tracing.Select("otsubst.tables")
}
