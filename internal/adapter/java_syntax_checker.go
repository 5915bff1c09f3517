package adapter

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	"golang.org/x/sync/errgroup"

	m "github.com/mouse-blink/casegen/internal/model"
)

// JavaSyntaxChecker parses generated Java files and reports the ones whose
// syntax tree contains errors.
type JavaSyntaxChecker interface {
	Check(ctx context.Context, paths []m.Path, workers int) ([]m.SyntaxFinding, error)
}

// TreeSitterJavaChecker is a JavaSyntaxChecker backed by tree-sitter-java.
type TreeSitterJavaChecker struct {
	fs       SourceFSAdapter
	language *sitter.Language
}

// NewTreeSitterJavaChecker constructs a checker reading files through fs.
func NewTreeSitterJavaChecker(fs SourceFSAdapter) *TreeSitterJavaChecker {
	return &TreeSitterJavaChecker{
		fs:       fs,
		language: sitter.NewLanguage(java.Language()),
	}
}

// Check parses every path on at most workers goroutines. Findings are
// returned sorted by path; a file yields at most one finding, located at its
// first erroneous node.
func (c *TreeSitterJavaChecker) Check(ctx context.Context, paths []m.Path, workers int) ([]m.SyntaxFinding, error) {
	if workers < 1 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		findings []m.SyntaxFinding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			finding, ok, err := c.checkFile(path)
			if err != nil {
				return err
			}

			if ok {
				mu.Lock()
				findings = append(findings, finding)
				mu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Path < findings[j].Path
	})

	return findings, nil
}

func (c *TreeSitterJavaChecker) checkFile(path m.Path) (m.SyntaxFinding, bool, error) {
	source, err := c.fs.ReadFile(path)
	if err != nil {
		return m.SyntaxFinding{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(c.language); err != nil {
		return m.SyntaxFinding{}, false, fmt.Errorf("java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return m.SyntaxFinding{Path: path, Line: 1, Column: 1, Message: "unparseable file"}, true, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return m.SyntaxFinding{}, false, nil
	}

	bad := firstErrorNode(root)
	if bad == nil {
		return m.SyntaxFinding{Path: path, Line: 1, Column: 1, Message: "syntax error"}, true, nil
	}

	pos := bad.StartPosition()
	msg := "syntax error"
	if bad.IsMissing() {
		msg = "missing " + bad.Kind()
	}

	return m.SyntaxFinding{
		Path:    path,
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
		Message: msg,
	}, true, nil
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}

	if node.IsError() || node.IsMissing() {
		return node
	}

	if !node.HasError() {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}

	return nil
}
