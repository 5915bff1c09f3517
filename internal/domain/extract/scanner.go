// Package extract implements the source-aware scanning used to pull test
// fixtures out of Java test classes: a comment/literal aware brace
// classifier, brace matchers, test method location, snippet and companion
// extraction, and top-level type declaration splitting.
package extract

// State is the lexical classification of the scanner at a given position.
type State int

// Classification states.
const (
	StateCode State = iota
	StateLineComment
	StateBlockComment
	StateString
	StateChar
)

func (s State) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateLineComment:
		return "line-comment"
	case StateBlockComment:
		return "block-comment"
	case StateString:
		return "string"
	case StateChar:
		return "char"
	default:
		return "unknown"
	}
}

// classifier is the single-pass state machine shared by BraceDepths and
// ClassifiedMatcher. Transitions only look at the current byte, one byte of
// lookahead and the escape rule, so scanning is byte based; every delimiter
// involved is ASCII.
type classifier struct {
	text  string
	state State
}

// step classifies text[i], possibly together with text[i+1]. It returns the
// number of bytes consumed and the brace delta seen in code: +1 for '{',
// -1 for '}', 0 otherwise.
func (c *classifier) step(i int) (int, int) {
	ch := c.text[i]

	var next byte
	if i+1 < len(c.text) {
		next = c.text[i+1]
	}

	switch c.state {
	case StateLineComment:
		if ch == '\n' {
			c.state = StateCode
		}

		return 1, 0
	case StateBlockComment:
		if ch == '*' && next == '/' {
			c.state = StateCode
			return 2, 0
		}

		return 1, 0
	case StateString, StateChar:
		if ch == '\\' {
			return c.clamp(i, 2), 0
		}

		if (c.state == StateString && ch == '"') || (c.state == StateChar && ch == '\'') {
			c.state = StateCode
		}

		return 1, 0
	}

	switch {
	case ch == '/' && next == '/':
		c.state = StateLineComment
		return 2, 0
	case ch == '/' && next == '*':
		c.state = StateBlockComment
		return 2, 0
	case ch == '"':
		c.state = StateString
	case ch == '\'':
		c.state = StateChar
	case ch == '{':
		return 1, 1
	case ch == '}':
		return 1, -1
	}

	return 1, 0
}

// clamp keeps a trailing escape from running past the end of the text.
func (c *classifier) clamp(i, n int) int {
	if i+n > len(c.text) {
		return len(c.text) - i
	}

	return n
}

// BraceDepths returns the depth trace of text: for every byte position i,
// the number of unmatched '{' seen in code up to and including i. Braces in
// comments, strings and char literals never change the depth, and a stray
// '}' at depth 0 is absorbed instead of going negative.
func BraceDepths(text string) []int {
	trace := make([]int, len(text))
	c := classifier{text: text}
	depth := 0

	for i := 0; i < len(text); {
		n, brace := c.step(i)

		switch {
		case brace > 0:
			depth++
		case brace < 0 && depth > 0:
			depth--
		}

		for j := i; j < i+n; j++ {
			trace[j] = depth
		}

		i += n
	}

	return trace
}
