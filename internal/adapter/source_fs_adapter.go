// Package adapter contains the infrastructure the casegen workflow relies on:
// filesystem access, dataset and manifest persistence, syntax checking and
// directory watching.
package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "github.com/mouse-blink/casegen/internal/model"
)

// SourceFSAdapter is the filesystem seen by the workflow: test class discovery
// on the input side, directory and file creation on the dataset side.
//
//nolint:interfacebloat // dataset writing needs the whole surface.
type SourceFSAdapter interface {
	// Get lists the files directly inside root whose base name matches
	// pattern, sorted by name. Sub-directories are never entered.
	Get(root m.Path, pattern string) ([]m.Source, error)

	// Walk visits root and the files directly inside it.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// Glob returns the slash-separated paths below root matching a doublestar
	// pattern, sorted.
	Glob(root m.Path, pattern string) ([]string, error)

	// ReadFile returns the raw bytes of a test class or generated file.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the hex SHA-256 of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo stats path; the workflow uses it to check input and dataset roots.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// WriteFile creates or truncates path.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Remove deletes a single file.
	Remove(path m.Path) error

	// RelPath expresses target relative to base.
	RelPath(base, target m.Path) (m.Path, error)

	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc is called for every entry visited by Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter returns a disk-backed adapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects the test class files of a single directory level.
func (a *LocalSourceFSAdapter) Get(root m.Path, pattern string) ([]m.Source, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid source pattern %q", pattern)
	}

	var sources []m.Source

	err := a.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); !matched {
			return nil
		}

		hash, err := a.HashFile(m.Path(path))
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		sources = append(sources, m.Source{
			Origin: &m.File{Path: m.Path(path), Hash: hash},
			Class:  strings.TrimSuffix(base, filepath.Ext(base)),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return filepath.Base(string(sources[i].Origin.Path)) < filepath.Base(string(sources[j].Origin.Path))
	})

	return sources, nil
}

// Walk never enters, nor reports, sub-directories of root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	top := string(root)

	return filepath.Walk(top, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != top {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// Glob matches pattern against the tree rooted at root.
func (a *LocalSourceFSAdapter) Glob(root m.Path, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(string(root)), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, root, err)
	}

	sort.Strings(matches)

	return matches, nil
}

func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile streams the file through SHA-256.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	return hex.EncodeToString(sum.Sum(nil)), nil
}

func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates path and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// Remove deletes the file at path.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}

func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))

	return m.Path(rel), err
}

// JoinPath uses the OS separator.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
