package extract

import (
	"errors"
	"unicode/utf8"

	m "github.com/mouse-blink/casegen/internal/model"
)

var errUnbalancedBody = errors.New(string(m.SkipUnbalancedBody))

// Option configures an Extractor.
type Option func(*Extractor)

// WithLookback sets how far before a test annotation the companion
// annotation may appear. Non-positive values keep the default.
func WithLookback(n int) Option {
	return func(x *Extractor) {
		if n > 0 {
			x.lookback = n
		}
	}
}

// WithBodyMatcher replaces the brace matcher used for method bodies.
func WithBodyMatcher(bm BraceMatcher) Option {
	return func(x *Extractor) {
		x.bodies = bm
	}
}

// Extractor pulls test cases out of test class sources and splits snippets
// into top-level type declarations. It holds no mutable state and can be
// shared.
type Extractor struct {
	markers  Markers
	lookback int
	re       patterns
	bodies   BraceMatcher
	decls    BraceMatcher
}

// New compiles markers into an Extractor.
func New(markers Markers, opts ...Option) (*Extractor, error) {
	re, err := compile(markers)
	if err != nil {
		return nil, err
	}

	x := &Extractor{
		markers:  markers,
		lookback: DefaultLookback,
		re:       re,
		bodies:   NaiveMatcher{},
		decls:    ClassifiedMatcher{},
	}

	for _, opt := range opts {
		opt(x)
	}

	return x, nil
}

// Default returns an Extractor for DefaultMarkers.
func Default() *Extractor {
	x, err := New(DefaultMarkers())
	if err != nil {
		panic(err)
	}

	return x
}

// MethodMatch is a located test method header. Err is set when its body
// could not be delimited.
type MethodMatch struct {
	Span m.MethodSpan
	Err  error
}

// Methods finds every test method header in text, in source order, and
// delimits each body with the body matcher.
func (x *Extractor) Methods(text string) []MethodMatch {
	var out []MethodMatch

	for _, loc := range x.re.method.FindAllStringSubmatchIndex(text, -1) {
		span := m.MethodSpan{
			Name:      text[loc[2]:loc[3]],
			Start:     loc[0],
			BodyStart: loc[1] - 1,
		}

		end, ok := x.bodies.FindClosing(text, span.BodyStart)
		if !ok {
			out = append(out, MethodMatch{Span: span, Err: errUnbalancedBody})
			continue
		}

		span.BodyEnd = end + 1
		out = append(out, MethodMatch{Span: span})
	}

	return out
}

// CompanionBefore returns the decoded literal of the companion annotation
// closest to start, searching only the lookback window that ends at start.
func (x *Extractor) CompanionBefore(text string, start int) string {
	if start > len(text) {
		start = len(text)
	}

	window := text[runesBefore(text, start, x.lookback):start]

	matches := x.re.companion.FindAllStringSubmatch(window, -1)
	if len(matches) == 0 {
		return ""
	}

	return decodeLiteral(matches[len(matches)-1][1], x.markers.NullLiteral)
}

// runesBefore returns the offset n characters before end, or 0.
func runesBefore(text string, end, n int) int {
	i := end
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
	}

	return i
}

// Snippets returns the contents assigned to the two snippet names inside a
// method body. Later assignments overwrite earlier ones; a missing name
// yields "".
func (x *Extractor) Snippets(body string) (string, string) {
	var a, b string

	for _, match := range x.re.snippet.FindAllStringSubmatch(body, -1) {
		content := decodeLiteral(match[2], x.markers.NullLiteral)

		switch match[1] {
		case x.markers.SnippetA:
			a = content
		case x.markers.SnippetB:
			b = content
		}
	}

	return a, b
}

// Split returns every top-level type declaration of fragment in order. A
// declaration is top level when its opening brace sits at depth 1 of the
// fragment's depth trace. An empty result means the fragment holds no
// declaration and the caller should keep it as a single unit.
func (x *Extractor) Split(fragment string) []m.TypeDeclaration {
	if fragment == "" {
		return nil
	}

	depths := BraceDepths(fragment)

	var decls []m.TypeDeclaration

	for _, loc := range x.re.decl.FindAllStringSubmatchIndex(fragment, -1) {
		brace := loc[1] - 1
		if depths[brace] != 1 {
			continue
		}

		end, ok := x.decls.FindClosing(fragment, brace)
		if !ok {
			continue
		}

		decls = append(decls, m.TypeDeclaration{
			Name: fragment[loc[6]:loc[7]],
			Kind: kindOf(fragment[loc[4]:loc[5]]),
			Text: fragment[loc[2] : end+1],
		})
	}

	return decls
}

// Extract runs method location, companion association and snippet
// extraction over one test class source.
func (x *Extractor) Extract(class, text string) []m.CaseOutcome {
	methods := x.Methods(text)
	outcomes := make([]m.CaseOutcome, 0, len(methods))

	for _, mm := range methods {
		if mm.Err != nil {
			outcomes = append(outcomes, m.CaseOutcome{Skipped: &m.Skipped{
				Class:  class,
				Method: mm.Span.Name,
				Reason: m.SkipReason(mm.Err.Error()),
			}})

			continue
		}

		v1, v2 := x.Snippets(text[mm.Span.BodyStart:mm.Span.BodyEnd])

		outcomes = append(outcomes, m.CaseOutcome{Case: &m.TestCase{
			Class:  class,
			Method: mm.Span.Name,
			V1:     v1,
			V2:     v2,
			Client: x.CompanionBefore(text, mm.Span.Start),
		}})
	}

	return outcomes
}
