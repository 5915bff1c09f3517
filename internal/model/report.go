package model

// CaseReport describes what a single test case produced (or would produce
// in a dry run).
type CaseReport struct {
	ID        string
	Method    string
	HasClient bool
	V1Types   []string
	V2Types   []string
}

// Fallbacks counts the snippet trees that had no top-level declaration.
func (r CaseReport) Fallbacks() int {
	n := 0
	if len(r.V1Types) == 0 {
		n++
	}

	if len(r.V2Types) == 0 {
		n++
	}

	return n
}

// Declarations counts the declaration files across both snippet trees.
func (r CaseReport) Declarations() int {
	return len(r.V1Types) + len(r.V2Types)
}

// ClassReport groups the cases extracted from one source file.
type ClassReport struct {
	Class   string
	Source  Path
	Cases   []CaseReport
	Skipped []Skipped
}

// Summary accumulates the outcome of a run. It replaces process-wide
// counters: the driver returns it and the UI renders it.
type Summary struct {
	Output       Path
	Files        int
	Classes      int
	Cases        int
	Skipped      int
	Declarations int
	Fallbacks    int
	Reports      []ClassReport
}

// Add folds a class report into the totals.
func (s *Summary) Add(report ClassReport) {
	s.Files++
	s.Skipped += len(report.Skipped)

	if len(report.Cases) > 0 {
		s.Classes++
	}

	for _, c := range report.Cases {
		s.Cases++
		s.Declarations += c.Declarations()
		s.Fallbacks += c.Fallbacks()
	}

	s.Reports = append(s.Reports, report)
}

// WrittenFile is one dataset file, relative to the dataset root.
type WrittenFile struct {
	Path   string `yaml:"path"`
	SHA256 string `yaml:"sha256"`
}

// CaseFiles lists what the dataset writer produced for one case.
type CaseFiles struct {
	ID    string
	Files []WrittenFile
}

// ManifestCase is the manifest entry of one case.
type ManifestCase struct {
	ID         string        `yaml:"id"`
	Class      string        `yaml:"class"`
	Method     string        `yaml:"method"`
	SourceHash string        `yaml:"source_sha256"`
	Files      []WrittenFile `yaml:"files"`
}

// Manifest indexes a generated dataset.
type Manifest struct {
	Cases []ManifestCase `yaml:"cases"`
}

// SyntaxFinding reports a generated file that does not parse cleanly.
type SyntaxFinding struct {
	Path    Path
	Line    int
	Column  int
	Message string
}
