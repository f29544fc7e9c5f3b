package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Text(t *testing.T) {
	sanitizer := NewSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "intro session", want: "intro session"},
		{name: "trims whitespace", input: "  call  ", want: "call"},
		{name: "strips formatting tags", input: "<b>call</b> <i>parent</i>", want: "call parent"},
		{name: "drops script body", input: "<script>alert(1)</script>", want: ""},
		{name: "drops style body", input: "<style>p{}</style>notes", want: "notes"},
		{name: "tag only becomes blank", input: "<br/>", want: ""},
		{name: "escapes ampersand", input: "Tom & Jerry", want: "Tom &amp; Jerry"},
		{name: "keeps cyrillic", input: "<p>Олена</p>", want: "Олена"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.Text(tt.input))
		})
	}
}
