package otshape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSegmentWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsubst.shaper")
	defer teardown()
	cases := []struct {
		name string
		in   string
		want []Word
	}{
		{"two words", "ab cd", []Word{
			{Runes: []rune("ab"), Boundary: ' '},
			{Runes: []rune("cd")},
		}},
		{"trailing newline", "ab\n", []Word{
			{Runes: []rune("ab"), Boundary: '\n'},
		}},
		{"consecutive boundaries", "a  b", []Word{
			{Runes: []rune("a"), Boundary: ' '},
			{Boundary: ' '},
			{Runes: []rune("b")},
		}},
		{"control delimits but drops", "a\tb", []Word{
			{Runes: []rune("a")},
			{Runes: []rune("b")},
		}},
		{"crlf", "a\r\nb", []Word{
			{Runes: []rune("a"), Boundary: '\r'},
			{Boundary: '\n'},
			{Runes: []rune("b")},
		}},
		{"empty", "", nil},
	}
	for _, c := range cases {
		got := SegmentWords(c.in)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%s: segmentation differs (-want +got):\n%s", c.name, diff)
		}
	}
}
