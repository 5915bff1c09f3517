package model

// MethodSpan locates one annotated test method inside a source text.
// Start is the offset of the test annotation; the body is the half-open range
// [BodyStart, BodyEnd) and includes both braces.
type MethodSpan struct {
	Name      string
	Start     int
	BodyStart int
	BodyEnd   int
}

// TestCase is the unit of extraction: one per located test method.
type TestCase struct {
	Class  string
	Method string
	V1     string
	V2     string
	Client string
}

// DeclKind is the kind of a type declaration found in a snippet.
type DeclKind string

const (
	KindClass      DeclKind = "class"
	KindInterface  DeclKind = "interface"
	KindEnum       DeclKind = "enum"
	KindRecord     DeclKind = "record"
	KindAnnotation DeclKind = "annotation"
)

// TypeDeclaration is a self-contained top-level declaration sliced from a
// snippet. Text runs from the first annotation or modifier above the keyword
// through the matching closing brace.
type TypeDeclaration struct {
	Name string
	Kind DeclKind
	Text string
}

// SkipReason explains why a located method produced no case.
type SkipReason string

const (
	// SkipUnbalancedBody is reported when naive brace counting never returns
	// to zero before the end of the file.
	SkipUnbalancedBody SkipReason = "unbalanced method body"
)

// Skipped records a test method that was found but dropped.
type Skipped struct {
	Class  string
	Method string
	Reason SkipReason
}

// CaseOutcome carries exactly one of Case or Skipped.
type CaseOutcome struct {
	Case    *TestCase
	Skipped *Skipped
}
