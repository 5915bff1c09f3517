package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const textBlockDelim = `"""`

// decodeLiteral turns the raw source form of a literal into its content.
// Text blocks are returned verbatim between their delimiters, quoted strings
// have their escapes decoded, and the null keyword yields "".
func decodeLiteral(raw, null string) string {
	s := strings.TrimSpace(raw)

	switch {
	case len(s) >= 2*len(textBlockDelim) && strings.HasPrefix(s, textBlockDelim) && strings.HasSuffix(s, textBlockDelim):
		return s[len(textBlockDelim) : len(s)-len(textBlockDelim)]
	case len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"':
		return unescape(s[1 : len(s)-1])
	case s == null:
		return ""
	default:
		return s
	}
}

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
}

// Hex digit counts of the numeric escapes \xhh, \uhhhh and \Uhhhhhhhh.
var hexEscapes = map[byte]int{
	'x': 2,
	'u': 4,
	'U': 8,
}

// unescape decodes backslash escapes: the single-character ones, octal
// \o to \ooo, and the hex forms. Unknown or malformed escapes are kept as
// written.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}

		c := s[i+1]

		if decoded, ok := escapes[c]; ok {
			b.WriteByte(decoded)
			i++

			continue
		}

		if isOctal(c) {
			j, v := i+1, 0
			for ; j < len(s) && j < i+4 && isOctal(s[j]); j++ {
				v = v*8 + int(s[j]-'0')
			}

			b.WriteRune(rune(v))
			i = j - 1

			continue
		}

		if n, ok := hexEscapes[c]; ok && i+2+n <= len(s) {
			if v, err := strconv.ParseUint(s[i+2:i+2+n], 16, 32); err == nil && utf8.ValidRune(rune(v)) {
				b.WriteRune(rune(v))
				i += 1 + n

				continue
			}
		}

		b.WriteByte(s[i])
		b.WriteByte(c)
		i++
	}

	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
