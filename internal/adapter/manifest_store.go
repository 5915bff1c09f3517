package adapter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/casegen/internal/model"
)

// ManifestFile is the manifest name inside a dataset root.
const ManifestFile = "manifest.yaml"

// ManifestStore persists and retrieves dataset manifests.
type ManifestStore interface {
	SaveManifest(root m.Path, manifest m.Manifest) error
	LoadManifest(root m.Path) (m.Manifest, error)
}

// LocalManifestStore keeps the manifest as YAML next to the dataset trees.
type LocalManifestStore struct {
	fs SourceFSAdapter
}

// NewLocalManifestStore constructs a ManifestStore backed by fs.
func NewLocalManifestStore(fs SourceFSAdapter) *LocalManifestStore {
	return &LocalManifestStore{fs: fs}
}

// SaveManifest writes <root>/manifest.yaml. The encoding depends only on the
// manifest value, so equal manifests produce identical bytes.
func (s *LocalManifestStore) SaveManifest(root m.Path, manifest m.Manifest) error {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := s.fs.MkdirAll(root); err != nil {
		return fmt.Errorf("creating %s: %w", root, err)
	}

	path := s.fs.JoinPath(string(root), ManifestFile)
	if err := s.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// LoadManifest reads <root>/manifest.yaml.
func (s *LocalManifestStore) LoadManifest(root m.Path) (m.Manifest, error) {
	path := s.fs.JoinPath(string(root), ManifestFile)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return m.Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return manifest, nil
}
