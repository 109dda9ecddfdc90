/*
Package otlayout resolves active substitution lookups for a script and applies
them to token sequences.

Resolve selects, for a preferred/fallback script tag pair, the ordered list of
lookup indices that are active for substitution — the font's declared order is
the substitution priority order, since later lookups are expected to see
earlier lookups' output. Substitute then runs the bounded fixed-point loop
over one word's tokens, applying ligature, chain-context and class-context
lookups in that order of priority.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsubst.layout'
func tracer() tracing.Trace {
	return tracing.Select("otsubst.layout")
}

// errLayout produces user level errors for lookup resolution.
func errLayout(message string) error {
	return fmt.Errorf("substitution layout: %s", message)
}
