package extract

// BraceMatcher finds the closing brace paired with the opening brace at
// position open. It reports false when open is not a '{' or when the text
// ends before the brace is closed.
type BraceMatcher interface {
	FindClosing(text string, open int) (int, bool)
}

// NaiveMatcher counts every '{' and '}' byte, including those inside
// comments and literals. Method bodies are matched this way.
type NaiveMatcher struct{}

// FindClosing implements BraceMatcher.
func (NaiveMatcher) FindClosing(text string, open int) (int, bool) {
	return findClosingNaive(text, open)
}

// ClassifiedMatcher only counts braces the classifier places in code. Type
// declarations inside snippets are matched this way.
type ClassifiedMatcher struct{}

// FindClosing implements BraceMatcher.
func (ClassifiedMatcher) FindClosing(text string, open int) (int, bool) {
	return findClosingClassified(text, open)
}

func findClosingNaive(text string, open int) (int, bool) {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return -1, false
	}

	depth := 0

	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return -1, false
}

func findClosingClassified(text string, open int) (int, bool) {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return -1, false
	}

	c := classifier{text: text}
	depth := 0

	for i := open; i < len(text); {
		n, brace := c.step(i)

		switch {
		case brace > 0:
			depth++
		case brace < 0:
			depth--
			if depth == 0 {
				return i, true
			}
		}

		i += n
	}

	return -1, false
}
