package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/casegen/internal/model"
)

const exampleTest = `package io.github.alien.roseau.diff;

class ExampleTest {
	@Test
	void widen() {
		var v1 = """pkg.Foo""";
		var v2 = "";

		assertNoBC(buildDiff(v1, v2));
	}
}
`

func TestNew_RejectsInvalidMarkers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Markers)
	}{
		{"empty test annotation", func(mk *Markers) { mk.TestAnnotation = "" }},
		{"blank companion annotation", func(mk *Markers) { mk.CompanionAnnotation = "  " }},
		{"empty snippet name", func(mk *Markers) { mk.SnippetB = "" }},
		{"identical snippet names", func(mk *Markers) { mk.SnippetB = mk.SnippetA }},
		{"no type keywords", func(mk *Markers) { mk.TypeKeywords = []string{" "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mk := DefaultMarkers()
			tt.mutate(&mk)

			_, err := New(mk)
			assert.Error(t, err)
		})
	}
}

func TestExtractor_Methods(t *testing.T) {
	src := `class FooTest {
	@Test
	void first() {
		var v1 = "a";
	}

	@Test public   static void second  ( ) {
		if (x) { y(); }
	}

	@Test
	@Override
	void notATest() {
	}

	@Test
	void broken() {
		var v1 = "{";
	}
`

	got := Default().Methods(src)
	require.Len(t, got, 3)

	assert.Equal(t, "first", got[0].Span.Name)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, "{\n\t\tvar v1 = \"a\";\n\t}", src[got[0].Span.BodyStart:got[0].Span.BodyEnd])
	assert.Equal(t, strings.Index(src, "@Test"), got[0].Span.Start)

	assert.Equal(t, "second", got[1].Span.Name)
	assert.NoError(t, got[1].Err)
	assert.True(t, strings.HasSuffix(src[got[1].Span.BodyStart:got[1].Span.BodyEnd], "y(); }\n\t}"))

	assert.Equal(t, "broken", got[2].Span.Name)
	assert.ErrorIs(t, got[2].Err, errUnbalancedBody)
}

func TestExtractor_Methods_CustomBodyMatcher(t *testing.T) {
	src := "@Test\nvoid quoted() {\n\tvar v1 = \"{\";\n}\n"

	naive := Default().Methods(src)
	require.Len(t, naive, 1)
	assert.Error(t, naive[0].Err)

	x, err := New(DefaultMarkers(), WithBodyMatcher(ClassifiedMatcher{}))
	require.NoError(t, err)

	classified := x.Methods(src)
	require.Len(t, classified, 1)
	assert.NoError(t, classified[0].Err)
}

func TestExtractor_CompanionBefore(t *testing.T) {
	x := Default()

	t.Run("quoted literal", func(t *testing.T) {
		src := "@Client(\"new A().m();\")\n@Test\nvoid a() {}"
		assert.Equal(t, "new A().m();", x.CompanionBefore(src, strings.Index(src, "@Test")))
	})

	t.Run("text block is verbatim", func(t *testing.T) {
		src := "@Client(\"\"\"\n\tA a = new A();\\n\"\"\")\n@Test\nvoid a() {}"
		assert.Equal(t, "\n\tA a = new A();\\n", x.CompanionBefore(src, strings.Index(src, "@Test")))
	})

	t.Run("closest annotation wins", func(t *testing.T) {
		src := "@Client(\"first\")\n@Client(\"second\")\n@Test\nvoid a() {}"
		assert.Equal(t, "second", x.CompanionBefore(src, strings.Index(src, "@Test")))
	})

	t.Run("outside lookback window", func(t *testing.T) {
		src := "@Client(\"far\")\n" + strings.Repeat(" ", DefaultLookback) + "@Test\nvoid a() {}"
		assert.Empty(t, x.CompanionBefore(src, strings.Index(src, "@Test")))
	})

	t.Run("window counts characters, not bytes", func(t *testing.T) {
		src := "@Client(\"near\")\n// " + strings.Repeat("é", 300) + "\n@Test\nvoid a() {}"
		start := strings.Index(src, "@Test")
		require.Greater(t, start, DefaultLookback)
		assert.Equal(t, "near", x.CompanionBefore(src, start))

		far := "@Client(\"far\")\n" + strings.Repeat("é", DefaultLookback) + "@Test\nvoid a() {}"
		assert.Empty(t, x.CompanionBefore(far, strings.Index(far, "@Test")))
	})

	t.Run("custom lookback", func(t *testing.T) {
		src := "@Client(\"far\")\n" + strings.Repeat(" ", DefaultLookback) + "@Test\nvoid a() {}"
		wide, err := New(DefaultMarkers(), WithLookback(2*DefaultLookback))
		require.NoError(t, err)
		assert.Equal(t, "far", wide.CompanionBefore(src, strings.Index(src, "@Test")))
	})

	t.Run("absent", func(t *testing.T) {
		src := "@Test\nvoid a() {}"
		assert.Empty(t, x.CompanionBefore(src, 0))
	})

	t.Run("null literal", func(t *testing.T) {
		src := "@Client(null)\n@Test\nvoid a() {}"
		assert.Empty(t, x.CompanionBefore(src, strings.Index(src, "@Test")))
	})
}

func TestExtractor_Snippets(t *testing.T) {
	x := Default()

	tests := []struct {
		name   string
		body   string
		wantV1 string
		wantV2 string
	}{
		{
			name:   "text block keeps escapes verbatim",
			body:   `{ var v1 = """line1\nline2"""; }`,
			wantV1: `line1\nline2`,
		},
		{
			name:   "quoted string decodes escapes",
			body:   `{ var v1 = "line1\nline2"; }`,
			wantV1: "line1\nline2",
		},
		{
			name:   "last assignment wins",
			body:   `{ var v1 = "old"; v1 = "new"; }`,
			wantV1: "new",
		},
		{
			name:   "null yields empty",
			body:   `{ var v1 = "a"; String v2 = null; }`,
			wantV1: "a",
		},
		{
			name: "missing names yield empty",
			body: `{ var x = "a"; }`,
		},
		{
			name:   "multi-line text blocks",
			body:   "{\n var v1 = \"\"\"\n\tclass A {}\n\t\"\"\";\n var v2 = \"\"\"\n\tclass A { void m() {} }\n\t\"\"\";\n}",
			wantV1: "\n\tclass A {}\n\t",
			wantV2: "\n\tclass A { void m() {} }\n\t",
		},
		{
			name:   "escaped quote inside quoted string",
			body:   `{ var v2 = "say \"hi\"\t!"; }`,
			wantV2: "say \"hi\"\t!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1, v2 := x.Snippets(tt.body)
			assert.Equal(t, tt.wantV1, v1)
			assert.Equal(t, tt.wantV2, v2)
		})
	}

	t.Run("verbatim and decoded differ", func(t *testing.T) {
		block, _ := x.Snippets(`{ var v1 = """line1\nline2"""; }`)
		quoted, _ := x.Snippets(`{ var v1 = "line1\nline2"; }`)
		assert.NotEqual(t, []byte(block), []byte(quoted))
	})
}

func TestExtractor_Split(t *testing.T) {
	x := Default()

	tests := []struct {
		name     string
		fragment string
		want     []m.TypeDeclaration
	}{
		{
			name:     "empty fragment",
			fragment: "",
		},
		{
			name:     "statement only",
			fragment: "int x = 1;",
		},
		{
			name:     "qualified name only",
			fragment: "pkg.Foo",
		},
		{
			name:     "string brace does not confuse splitter",
			fragment: "\"{\"\nclass A{}",
			want: []m.TypeDeclaration{
				{Name: "A", Kind: m.KindClass, Text: "class A{}"},
			},
		},
		{
			name:     "nested class stays inside outer on one line",
			fragment: "class Outer { class Inner {} }",
			want: []m.TypeDeclaration{
				{Name: "Outer", Kind: m.KindClass, Text: "class Outer { class Inner {} }"},
			},
		},
		{
			name:     "nested class on its own line stays inside outer",
			fragment: "class Outer {\n\tstatic class Inner {}\n}",
			want: []m.TypeDeclaration{
				{Name: "Outer", Kind: m.KindClass, Text: "class Outer {\n\tstatic class Inner {}\n}"},
			},
		},
		{
			name:     "annotations and modifiers are part of the declaration",
			fragment: "@Deprecated\npublic final class A {}\n\ninterface B {}",
			want: []m.TypeDeclaration{
				{Name: "A", Kind: m.KindClass, Text: "@Deprecated\npublic final class A {}"},
				{Name: "B", Kind: m.KindInterface, Text: "\ninterface B {}"},
			},
		},
		{
			name:     "every declaration kind",
			fragment: "public enum E { X, Y; }\nrecord R(int x) {}\n@Target(ElementType.TYPE)\n@interface Marker {}\nsealed interface S permits C {}",
			want: []m.TypeDeclaration{
				{Name: "E", Kind: m.KindEnum, Text: "public enum E { X, Y; }"},
				{Name: "R", Kind: m.KindRecord, Text: "record R(int x) {}"},
				{Name: "Marker", Kind: m.KindAnnotation, Text: "@Target(ElementType.TYPE)\n@interface Marker {}"},
				{Name: "S", Kind: m.KindInterface, Text: "sealed interface S permits C {}"},
			},
		},
		{
			name:     "comments and literals inside the body",
			fragment: "class A {\n\t// }\n\tString s = \"}\";\n\tchar c = '{';\n}\nclass B {}",
			want: []m.TypeDeclaration{
				{Name: "A", Kind: m.KindClass, Text: "class A {\n\t// }\n\tString s = \"}\";\n\tchar c = '{';\n}"},
				{Name: "B", Kind: m.KindClass, Text: "class B {}"},
			},
		},
		{
			name:     "unterminated declaration is dropped",
			fragment: "class A {\n\tvoid m() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Split(tt.fragment)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	x := Default()

	t.Run("single fallback case", func(t *testing.T) {
		outcomes := x.Extract("ExampleTest", exampleTest)
		require.Len(t, outcomes, 1)
		require.NotNil(t, outcomes[0].Case)
		assert.Nil(t, outcomes[0].Skipped)

		want := m.TestCase{Class: "ExampleTest", Method: "widen", V1: "pkg.Foo"}
		assert.Equal(t, want, *outcomes[0].Case)
		assert.Empty(t, x.Split(outcomes[0].Case.V1))
	})

	t.Run("companion and skipped methods", func(t *testing.T) {
		src := `class T {
	@Client("new A().m();")
	@Test
	void called() {
		var v1 = """
			public class A { public void m() {} }
			""";
		var v2 = """
			public class A { }
			""";
	}

	@Test
	void broken() {
		var v1 = "{";
	}
`
		outcomes := x.Extract("T", src)
		require.Len(t, outcomes, 2)

		require.NotNil(t, outcomes[0].Case)
		assert.Equal(t, "called", outcomes[0].Case.Method)
		assert.Equal(t, "new A().m();", outcomes[0].Case.Client)

		decls := x.Split(outcomes[0].Case.V1)
		require.Len(t, decls, 1)
		assert.Equal(t, "A", decls[0].Name)

		require.NotNil(t, outcomes[1].Skipped)
		assert.Equal(t, m.Skipped{Class: "T", Method: "broken", Reason: m.SkipUnbalancedBody}, *outcomes[1].Skipped)
	})
}
