package otshape

// Word is one segmentation unit: a run of codepoints up to (excluding) the
// boundary that ended it. Boundary is 0 when the run ends at the end of input
// or at a dropped control character.
type Word struct {
	Runes    []rune
	Boundary rune
}

// SegmentWords splits text into words at Space, CR and LF. Other control
// characters below 0x20 also delimit words but are dropped from the output;
// Space, CR and LF are re-emitted verbatim by the serializer. Consecutive
// boundaries yield empty words, keeping the boundary sequence intact.
//
// "ab cd" segments into two words joined by one Space boundary.
func SegmentWords(text string) []Word {
	var words []Word
	var run []rune
	for _, r := range text {
		switch {
		case r == ' ' || r == '\n' || r == '\r':
			words = append(words, Word{Runes: run, Boundary: r})
			run = nil
		case r < 0x20:
			words = append(words, Word{Runes: run})
			run = nil
		default:
			run = append(run, r)
		}
	}
	if len(run) > 0 {
		words = append(words, Word{Runes: run})
	}
	tracer().Debugf("segmented input into %d words", len(words))
	return words
}
