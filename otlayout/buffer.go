package otlayout

import "github.com/glyphrun/otsubst/ot"

// TokenBuffer is a mutable sequence of glyph tokens used by substitution and
// reordering.
//
// Implementations may be simple slices or more complex structures. The
// interface is intentionally small to let clients provide their own storage
// while still enabling substitutions.
//
// Contract:
//   - Indices are zero-based in the range [0, Len()).
//   - At/Set operate on the current buffer.
//   - Replace/Insert/Delete return the resulting buffer. They may return the
//     same receiver or a new buffer. Callers must always use the returned
//     value.
//   - Arguments follow slice semantics: Replace(i, j, repl) replaces the range
//     [i:j) with repl; Insert(i, tokens) inserts before i; Delete(i, j)
//     removes [i:j).
//   - Out-of-range indices are programmer errors and may panic.
type TokenBuffer interface {
	// Len returns the number of tokens in the buffer.
	Len() int
	// At returns the token at index i.
	At(i int) ot.GlyphToken
	// Set overwrites the token at index i.
	Set(i int, t ot.GlyphToken)
	// Replace replaces the range [i:j) with repl and returns the resulting buffer.
	Replace(i, j int, repl []ot.GlyphToken) TokenBuffer
	// Insert inserts tokens before index i and returns the resulting buffer.
	Insert(i int, tokens []ot.GlyphToken) TokenBuffer
	// Delete removes the range [i:j) and returns the resulting buffer.
	Delete(i, j int) TokenBuffer
}

// TokenSlice is the default TokenBuffer implementation backed by a slice.
type TokenSlice []ot.GlyphToken

func (b TokenSlice) Len() int {
	return len(b)
}

func (b TokenSlice) At(i int) ot.GlyphToken {
	return b[i]
}

func (b TokenSlice) Set(i int, t ot.GlyphToken) {
	b[i] = t
}

func (b TokenSlice) Replace(i, j int, repl []ot.GlyphToken) TokenBuffer {
	if len(repl) <= j-i { // shrinking splice, done in place
		n := copy(b[i:], repl)
		m := copy(b[i+n:], b[j:])
		return b[:i+n+m]
	}
	out := make(TokenSlice, 0, len(b)+len(repl)-(j-i))
	out = append(out, b[:i]...)
	out = append(out, repl...)
	out = append(out, b[j:]...)
	return out
}

func (b TokenSlice) Insert(i int, tokens []ot.GlyphToken) TokenBuffer {
	return b.Replace(i, i, tokens)
}

func (b TokenSlice) Delete(i, j int) TokenBuffer {
	return b.Replace(i, j, nil)
}

// EditSpan describes a buffer mutation so callers can re-map positions after
// a replacement or insertion.
type EditSpan struct {
	From int // start index (inclusive) of the replaced range
	To   int // end index (exclusive) of the replaced range
	Len  int // length of the replacement segment
}
