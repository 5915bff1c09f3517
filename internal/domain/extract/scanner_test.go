package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBraceDepths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{
			name: "empty text",
			text: "",
			want: []int{},
		},
		{
			name: "nested braces",
			text: "{{}}",
			want: []int{1, 2, 1, 0},
		},
		{
			name: "stray closer is absorbed",
			text: "}{",
			want: []int{0, 1},
		},
		{
			name: "line comment hides braces until newline",
			text: "a{//{\n}",
			want: []int{0, 1, 1, 1, 1, 1, 0},
		},
		{
			name: "block comment hides braces",
			text: "{/*}*/}",
			want: []int{1, 1, 1, 1, 1, 1, 0},
		},
		{
			name: "char literal hides brace",
			text: "{'}'}",
			want: []int{1, 1, 1, 1, 0},
		},
		{
			name: "escaped quote does not end string",
			text: `{"\"}"}`,
			want: []int{1, 1, 1, 1, 1, 1, 0},
		},
		{
			name: "text block hides braces",
			text: "{\"\"\"\n}\n\"\"\"}",
			want: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BraceDepths(tt.text)
			require.Len(t, got, len(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBraceDepths_NeverNegative(t *testing.T) {
	inputs := []string{
		"}}}}",
		"}{}}{{}}}}",
		"class A { } } } // }",
		"'}}' \"}}\" /* }} */ }}",
		"\\}\"\\",
		"}\"unterminated {",
		strings.Repeat("}{}", 100),
	}

	for _, in := range inputs {
		for i, d := range BraceDepths(in) {
			assert.GreaterOrEqualf(t, d, 0, "depth at %d of %q", i, in)
		}
	}
}

func TestBraceDepths_LiteralBracesDoNotChangeDepth(t *testing.T) {
	code := "class A {}"
	withNoise := "// {\n/* } */\n\"{\" '}'\n" + code
	offset := len(withNoise) - len(code)

	plain := BraceDepths(code)
	noisy := BraceDepths(withNoise)

	for i := range plain {
		assert.Equalf(t, plain[i], noisy[offset+i], "position %d", i)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "code", StateCode.String())
	assert.Equal(t, "line-comment", StateLineComment.String())
	assert.Equal(t, "block-comment", StateBlockComment.String())
	assert.Equal(t, "string", StateString.String())
	assert.Equal(t, "char", StateChar.String())
	assert.Equal(t, "unknown", State(42).String())
}
