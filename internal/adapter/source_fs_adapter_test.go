package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/casegen/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("nested directories are skipped", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "ATest.java"), "class ATest {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "BTest.java"), "class BTest {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "BTest.java")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "ATest.java")), "Walk() did not visit top-level file")
	})
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	t.Run("example fixtures sorted and non recursive", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		for _, name := range []string{"MethodRemovedTest.java", "ExampleTest.java"} {
			copyExampleFile(t, examplePath(t, "diff", name), filepath.Join(root, name))
		}
		copyExampleFile(t, examplePath(t, "diff", "nested", "IgnoredTest.java"), filepath.Join(root, "nested", "IgnoredTest.java"))
		writeTestFile(t, filepath.Join(root, "notes.txt"), "not java\n")

		sources, err := adapter.Get(m.Path(root), "*.java")
		require.NoError(t, err)
		require.Len(t, sources, 2)

		assert.Equal(t, "ExampleTest", sources[0].Class)
		assert.Equal(t, "MethodRemovedTest", sources[1].Class)

		content := readFileBytes(t, filepath.Join(root, "ExampleTest.java"))
		require.NotNil(t, sources[0].Origin)
		assert.Equal(t, m.Path(filepath.Join(root, "ExampleTest.java")), sources[0].Origin.Path)
		assert.Equal(t, hashBytes(content), sources[0].Origin.Hash)
	})

	t.Run("sort is by byte order", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		for _, name := range []string{"bTest.java", "BTest.java", "ATest.java"} {
			writeTestFile(t, filepath.Join(root, name), "class X {}\n")
		}

		sources, err := adapter.Get(m.Path(root), "*.java")
		require.NoError(t, err)

		var classes []string
		for _, s := range sources {
			classes = append(classes, s.Class)
		}
		assert.Equal(t, []string{"ATest", "BTest", "bTest"}, classes)
	})

	t.Run("empty directory", func(t *testing.T) {
		sources, err := NewLocalSourceFSAdapter().Get(m.Path(t.TempDir()), "*.java")
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().Get(m.Path(filepath.Join(t.TempDir(), "missing")), "*.java")
		assert.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().Get(m.Path(t.TempDir()), "[")
		assert.Error(t, err)
	})
}

func TestLocalSourceFSAdapter_Glob(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "v1"))
	mustMkdir(t, filepath.Join(root, "v1", "case"))
	writeTestFile(t, filepath.Join(root, "v1", "case", "B.java"), "")
	writeTestFile(t, filepath.Join(root, "v1", "case", "A.java"), "")
	writeTestFile(t, filepath.Join(root, "v1", "case", "notes.txt"), "")

	got, err := adapter.Glob(m.Path(root), "v1/**/*.java")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1/case/A.java", "v1/case/B.java"}, got)
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "ATest.java")
	content := "class ATest {\n" + "}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "ATest.java")
	content := []byte("class ATest {}\n")
	writeTestBytes(t, path, content)

	got, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, hashBytes(content), got)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	info, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "missing")))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_WriteAndRemove(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	dir := adapter.JoinPath(root, "a", "b")
	require.NoError(t, adapter.MkdirAll(dir))

	path := adapter.JoinPath(string(dir), "A.java")
	require.NoError(t, adapter.WriteFile(path, []byte("class A {}"), 0o644))
	assert.Equal(t, "class A {}", string(readFileBytes(t, string(path))))

	require.NoError(t, adapter.Remove(path))
	_, err := os.Stat(string(path))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	joined := adapter.JoinPath("out", "v1", "src")
	assert.Equal(t, m.Path(filepath.Join("out", "v1", "src")), joined)

	rel, err := adapter.RelPath(m.Path("out"), joined)
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("v1", "src")), rel)
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func hashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := filepath.Clean(filepath.Join(wd, "..", ".."))
	parts := append([]string{repoRoot, "examples"}, elem...)

	return filepath.Join(parts...)
}

func copyExampleFile(t *testing.T, src, dst string) {
	t.Helper()
	content := readFileBytes(t, src)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, content, 0o644))
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return content
}
