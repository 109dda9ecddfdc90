package otshape

import (
	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otlayout"
	"golang.org/x/text/language"
)

// DoubleMatraRule handles two-part vowel signs which decompose into a
// pre-base and a post-base glyph. When the trigger codepoint follows a
// consonant, the pre-base glyph is inserted before the consonant and the
// trigger is rewritten to the post-base glyph.
type DoubleMatraRule struct {
	Trigger    rune
	PreInsert  rune
	PostAppend rune
}

// ScriptProfile carries everything script-specific the shaper needs: the
// script tags to resolve against the font, the matra reordering tables, the
// vowel buckets steering reph placement, and per-stage enable flags.
//
// Profiles are plain values. Multiple profiles can be in use at the same
// time, one shaper each.
//
// Vowel bucket membership is data, not classification logic: scripts without
// curated lists simply have no reph reordering.
type ScriptProfile struct {
	Name           string       // profile selector, lower case
	Script         ot.Tag       // preferred script tag
	ScriptFallback ot.Tag       // older tag tried when Script is absent
	Language       language.Tag // for diagnostics only

	SingleMatra []rune            // pre-base vowel signs swapped before their consonant
	DoubleMatra []DoubleMatraRule // two-part vowel signs

	// Reph relocation: the repositioner pair and the vowel buckets deciding
	// where the reph mark lands relative to a following vowel sign.
	Reph            rune
	Virama          rune
	VowelAboveRight []rune // reph mark goes between consonant and vowel
	VowelBelow      []rune // reph mark goes after the vowel

	Ligatures    bool // apply GSUB type 4 lookups
	ChainContext bool // apply GSUB type 6 lookups
	ClassContext bool // apply GSUB type 5 lookups

	MatraSwap      bool
	RakaarFusion   bool
	RephReordering bool
}

// SubstOptions returns the engine options matching the profile's lookup-kind
// flags.
func (p ScriptProfile) SubstOptions() otlayout.Options {
	return otlayout.Options{
		Ligatures:    p.Ligatures,
		ChainContext: p.ChainContext,
		ClassContext: p.ClassContext,
	}
}

// Builtin profiles, data lifted from per-script shaping tables. Devanagari is
// the only script with reph and rakaar processing; the Dravidian scripts use
// matra reordering only.
var (
	DevanagariProfile = ScriptProfile{
		Name:           "devanagari",
		Script:         ot.T("dev2"),
		ScriptFallback: ot.T("deva"),
		Language:       language.Hindi,
		SingleMatra:    []rune{0x094e, 0x093f},
		Reph:           0x0930,
		Virama:         0x094d,
		VowelAboveRight: []rune{
			0x093e, 0x093f, 0x0940, 0x0949, 0x094a, 0x094b, 0x094c, 0x094f,
		},
		VowelBelow: []rune{
			0x0941, 0x0942, 0x0943, 0x0944, 0x0945, 0x0946, 0x0947, 0x0948, 0x094d,
		},
		Ligatures:      true,
		ChainContext:   true,
		ClassContext:   true,
		MatraSwap:      true,
		RakaarFusion:   true,
		RephReordering: true,
	}

	TamilProfile = ScriptProfile{
		Name:           "tamil",
		Script:         ot.T("tml2"),
		ScriptFallback: ot.T("taml"),
		Language:       language.Tamil,
		SingleMatra:    []rune{0x0bc6, 0x0bc7, 0x0bc8},
		DoubleMatra: []DoubleMatraRule{
			{Trigger: 0x0bca, PreInsert: 0x0bc6, PostAppend: 0x0bbe},
			{Trigger: 0x0bcb, PreInsert: 0x0bc7, PostAppend: 0x0bbe},
			{Trigger: 0x0bcc, PreInsert: 0x0bc6, PostAppend: 0x0bd7},
		},
		Ligatures:    true,
		ChainContext: true,
		ClassContext: true,
		MatraSwap:    true,
	}

	MalayalamProfile = ScriptProfile{
		Name:           "malayalam",
		Script:         ot.T("mlm2"),
		ScriptFallback: ot.T("mlym"),
		Language:       language.Malayalam,
		SingleMatra:    []rune{0x0d46, 0x0d47, 0x0d48},
		DoubleMatra: []DoubleMatraRule{
			{Trigger: 0x0d4a, PreInsert: 0x0d46, PostAppend: 0x0d3e},
			{Trigger: 0x0d4b, PreInsert: 0x0d47, PostAppend: 0x0d3e},
			{Trigger: 0x0d4c, PreInsert: 0x0d46, PostAppend: 0x0d57},
		},
		Ligatures:    true,
		ChainContext: true,
		ClassContext: true,
		MatraSwap:    true,
	}

	TeluguProfile = ScriptProfile{
		Name:           "telugu",
		Script:         ot.T("tel2"),
		ScriptFallback: ot.T("telu"),
		Language:       language.Telugu,
		Ligatures:      true,
		ChainContext:   true,
		ClassContext:   true,
	}

	KannadaProfile = ScriptProfile{
		Name:           "kannada",
		Script:         ot.T("knd2"),
		ScriptFallback: ot.T("knda"),
		Language:       language.Kannada,
		Ligatures:      true,
		ChainContext:   true,
		ClassContext:   true,
	}
)

// Profiles lists the builtin script profiles.
func Profiles() []ScriptProfile {
	return []ScriptProfile{
		DevanagariProfile, TamilProfile, MalayalamProfile, TeluguProfile, KannadaProfile,
	}
}

// ProfileFor selects a builtin profile by name.
func ProfileFor(name string) (ScriptProfile, bool) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, true
		}
	}
	return ScriptProfile{}, false
}
