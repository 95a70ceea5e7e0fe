package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterHTMLTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text untouched", input: "MacBook Pro 16", want: "MacBook Pro 16"},
		{name: "script stripped", input: "<script>alert(1)</script>laptop", want: "laptop"},
		{name: "markup removed text kept", input: "<b>laptop</b> in <i>repair</i>", want: "laptop in repair"},
		{name: "anchor removed", input: `see <a href="https://evil.example.com">docs</a>`, want: "see docs"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FilterHTMLTags(tc.input))
		})
	}
}

func TestFilterInvisibleCharacters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "zero width space", input: "lap​top", want: "laptop"},
		{name: "bidi override", input: "‮laptop‬", want: "laptop"},
		{name: "soft hyphen and bom", input: "­lap\ufefftop", want: "laptop"},
		{name: "unicode tags", input: "laptop\U000E0041\U000E0042", want: "laptop"},
		{name: "newlines and tabs survive", input: "line1\nline2\ttabbed", want: "line1\nline2\ttabbed"},
		{name: "control characters stripped", input: "lap\x00top", want: "laptop"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FilterInvisibleCharacters(tc.input))
		})
	}
}

func TestSanitizeCombines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "laptop", Sanitize("<b>lap​top</b>"))
}
