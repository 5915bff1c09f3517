package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	m "github.com/mouse-blink/casegen/internal/model"
)

// DefaultLookback is how many characters before a test annotation are searched for
// a companion annotation.
const DefaultLookback = 500

// Markers is the token vocabulary recognised by the extractor. Every list is
// matched literally; whitespace between tokens is free.
type Markers struct {
	TestAnnotation      string
	MethodModifiers     []string
	CompanionAnnotation string
	SnippetA            string
	SnippetB            string
	NullLiteral         string
	TypeKeywords        []string
	TypeModifiers       []string
}

// DefaultMarkers returns the markers used by the diff test suites.
func DefaultMarkers() Markers {
	return Markers{
		TestAnnotation:      "@Test",
		MethodModifiers:     []string{"public", "protected", "private", "static", "final"},
		CompanionAnnotation: "@Client",
		SnippetA:            "v1",
		SnippetB:            "v2",
		NullLiteral:         "null",
		TypeKeywords:        []string{"class", "interface", "enum", "record", "@interface"},
		TypeModifiers: []string{
			"public", "protected", "private", "abstract", "final",
			"sealed", "non-sealed", "nonsealed", "static", "strictfp",
		},
	}
}

var (
	errEmptyMarker  = errors.New("marker must not be empty")
	errSameSnippets = errors.New("snippet names must differ")
)

// Validate reports the first unusable marker.
func (mk Markers) Validate() error {
	required := []struct{ name, value string }{
		{"test annotation", mk.TestAnnotation},
		{"companion annotation", mk.CompanionAnnotation},
		{"snippet a", mk.SnippetA},
		{"snippet b", mk.SnippetB},
		{"null literal", mk.NullLiteral},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s: %w", r.name, errEmptyMarker)
		}
	}

	if mk.SnippetA == mk.SnippetB {
		return errSameSnippets
	}

	if len(nonEmpty(mk.TypeKeywords)) == 0 {
		return fmt.Errorf("type keywords: %w", errEmptyMarker)
	}

	return nil
}

// kindOf maps a declaration keyword to its kind. Keywords outside the Java
// set keep their own spelling.
func kindOf(keyword string) m.DeclKind {
	switch keyword {
	case "class":
		return m.KindClass
	case "interface":
		return m.KindInterface
	case "enum":
		return m.KindEnum
	case "record":
		return m.KindRecord
	case "@interface":
		return m.KindAnnotation
	default:
		return m.DeclKind(strings.TrimPrefix(keyword, "@"))
	}
}

// patterns holds the compiled expressions for one Markers value.
type patterns struct {
	method    *regexp.Regexp
	companion *regexp.Regexp
	snippet   *regexp.Regexp
	decl      *regexp.Regexp
}

const identifier = `[a-zA-Z_$][a-zA-Z0-9_$]*`

func compile(mk Markers) (patterns, error) {
	if err := mk.Validate(); err != nil {
		return patterns{}, err
	}

	literal := `"""(?:.*?)"""|"(?:.*?)"|` + regexp.QuoteMeta(mk.NullLiteral)

	method := regexp.QuoteMeta(mk.TestAnnotation) + `\s*(?:\r?\n\s*)*`
	if mods := alternation(mk.MethodModifiers); mods != "" {
		method += `(?:(?:` + mods + `)\s+|\s+)*`
	} else {
		method += `\s*`
	}

	method += `void\s+(` + identifier + `)\s*\(\s*\)\s*\{`

	companion := `(?s)` + regexp.QuoteMeta(mk.CompanionAnnotation) + `\s*\(\s*(` + literal + `)\s*\)`

	snippet := `(?s)(` + alternation([]string{mk.SnippetA, mk.SnippetB}) + `)\s*=\s*(` + literal + `)\s*;`

	prefix := `^[\t ]*(?:@[A-Za-z0-9_$.]+(?:\([^)]*\))?[\t ]*)*`
	if mods := alternation(mk.TypeModifiers); mods != "" {
		prefix += `(?:` + mods + `|\s)*`
	} else {
		prefix += `\s*`
	}

	decl := `(?m)(` + prefix + `)\s*(` + alternation(mk.TypeKeywords) + `)\s+([A-Za-z_][A-Za-z0-9_]*)[^{;]*\{`

	var (
		p   patterns
		err error
	)

	if p.method, err = regexp.Compile(method); err != nil {
		return patterns{}, fmt.Errorf("method header pattern: %w", err)
	}

	if p.companion, err = regexp.Compile(companion); err != nil {
		return patterns{}, fmt.Errorf("companion pattern: %w", err)
	}

	if p.snippet, err = regexp.Compile(snippet); err != nil {
		return patterns{}, fmt.Errorf("snippet pattern: %w", err)
	}

	if p.decl, err = regexp.Compile(decl); err != nil {
		return patterns{}, fmt.Errorf("declaration pattern: %w", err)
	}

	return p, nil
}

func alternation(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, token := range nonEmpty(tokens) {
		quoted = append(quoted, regexp.QuoteMeta(token))
	}

	return strings.Join(quoted, "|")
}

func nonEmpty(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if t := strings.TrimSpace(token); t != "" {
			out = append(out, t)
		}
	}

	return out
}
