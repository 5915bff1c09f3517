package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	m "github.com/mouse-blink/casegen/internal/model"
)

// Dataset tree names under the output root.
const (
	ClientTree = "client"
	V1Tree     = "v1"
	V2Tree     = "v2"

	srcDir   = "src"
	javaExt  = ".java"
	mainFile = "Main" + javaExt
)

// DatasetWriter persists one extracted test case as client/v1/v2 source trees.
type DatasetWriter interface {
	WriteCase(root m.Path, tc m.TestCase, v1, v2 []m.TypeDeclaration) (m.CaseFiles, error)
}

// LocalDatasetWriter writes cases through a SourceFSAdapter.
type LocalDatasetWriter struct {
	fs  SourceFSAdapter
	log *zap.Logger
}

// NewLocalDatasetWriter constructs a LocalDatasetWriter. A nil logger is
// replaced with a no-op one.
func NewLocalDatasetWriter(fs SourceFSAdapter, log *zap.Logger) *LocalDatasetWriter {
	if log == nil {
		log = zap.NewNop()
	}

	return &LocalDatasetWriter{fs: fs, log: log}
}

// CaseID returns the directory and package name used for a test case.
func CaseID(tc m.TestCase) string {
	return Sanitize(tc.Class) + "_" + Sanitize(tc.Method)
}

// Sanitize replaces every character outside [A-Za-z0-9_$-] with '_'.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '$', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

// MainWrapper renders the client entry point for a case. A blank companion
// snippet yields the package line alone.
func MainWrapper(id, client string) string {
	pkg := packageLine(id)

	body := strings.TrimSpace(client)
	if body == "" {
		return pkg
	}

	return pkg + "\n" +
		"public class Main {\n" +
		"    public static void main(String[] args) {\n" +
		"        " + body + "\n" +
		"    }\n" +
		"}\n"
}

func packageLine(id string) string {
	return "package " + id + ";\n"
}

// WriteCase writes the client entry point and both primary trees of tc.
func (w *LocalDatasetWriter) WriteCase(root m.Path, tc m.TestCase, v1, v2 []m.TypeDeclaration) (m.CaseFiles, error) {
	id := CaseID(tc)
	out := m.CaseFiles{ID: id}

	clientDir := w.fs.JoinPath(string(root), ClientTree, srcDir, id)
	if err := w.fs.MkdirAll(clientDir); err != nil {
		return out, fmt.Errorf("creating %s: %w", clientDir, err)
	}

	written, err := w.write(root, w.fs.JoinPath(string(clientDir), mainFile), MainWrapper(id, tc.Client))
	if err != nil {
		return out, err
	}

	out.Files = append(out.Files, written)

	for _, tree := range []struct {
		name    string
		snippet string
		decls   []m.TypeDeclaration
	}{
		{V1Tree, tc.V1, v1},
		{V2Tree, tc.V2, v2},
	} {
		files, err := w.writeTree(root, tree.name, id, tc.Method, tree.snippet, tree.decls)
		if err != nil {
			return out, err
		}

		out.Files = append(out.Files, files...)
	}

	return out, nil
}

func (w *LocalDatasetWriter) writeTree(root m.Path, tree, id, method, snippet string, decls []m.TypeDeclaration) ([]m.WrittenFile, error) {
	dir := w.fs.JoinPath(string(root), tree, srcDir, id)
	if err := w.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	fallback := w.fs.JoinPath(string(dir), method+javaExt)
	pkg := packageLine(id)

	if len(decls) == 0 {
		written, err := w.write(root, fallback, pkg+snippet)
		if err != nil {
			return nil, err
		}

		return []m.WrittenFile{written}, nil
	}

	// The fallback goes first: a declaration named like the method reuses
	// its path.
	if err := w.fs.Remove(fallback); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.log.Debug("stale fallback not removed", zap.String("path", string(fallback)), zap.Error(err))
	}

	files := make([]m.WrittenFile, 0, len(decls))

	for _, decl := range decls {
		written, err := w.write(root, w.fs.JoinPath(string(dir), decl.Name+javaExt), pkg+decl.Text)
		if err != nil {
			return nil, err
		}

		files = append(files, written)
	}

	return files, nil
}

func (w *LocalDatasetWriter) write(root, path m.Path, content string) (m.WrittenFile, error) {
	data := []byte(content)
	if err := w.fs.WriteFile(path, data, 0o644); err != nil {
		return m.WrittenFile{}, fmt.Errorf("writing %s: %w", path, err)
	}

	rel, err := w.fs.RelPath(root, path)
	if err != nil {
		return m.WrittenFile{}, fmt.Errorf("relative path of %s: %w", path, err)
	}

	return m.WrittenFile{
		Path:   filepath.ToSlash(string(rel)),
		SHA256: fmt.Sprintf("%x", sha256.Sum256(data)),
	}, nil
}
