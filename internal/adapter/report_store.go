package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// ManifestFileName is the name of the run manifest inside the output directory.
const ManifestFileName = "manifest.yaml"

// ManifestVersion is the schema version written by SaveManifest.
const ManifestVersion = 1

// ErrManifestNotFound is returned by LoadManifest when no manifest exists.
var ErrManifestNotFound = errors.New("manifest not found")

// ReportStore persists the manifest of a batch run.
type ReportStore interface {
	SaveManifest(ctx context.Context, dir m.Path, manifest m.Manifest) error
	LoadManifest(ctx context.Context, dir m.Path) (m.Manifest, error)
}

// YAMLReportStore stores manifests as YAML documents.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveManifest writes dir/manifest.yaml atomically.
func (s *YAMLReportStore) SaveManifest(ctx context.Context, dir m.Path, manifest m.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if manifest.Version == 0 {
		manifest.Version = ManifestVersion
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(manifest); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(string(dir), ManifestFileName)
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// LoadManifest reads dir/manifest.yaml.
func (s *YAMLReportStore) LoadManifest(ctx context.Context, dir m.Path) (m.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return m.Manifest{}, err
	}

	path := filepath.Join(string(dir), ManifestFileName)

	// #nosec G304 - path is built from the configured output directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.Manifest{}, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}

		return m.Manifest{}, err
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if manifest.Version > ManifestVersion {
		return m.Manifest{}, fmt.Errorf("unsupported manifest version %d", manifest.Version)
	}

	return manifest, nil
}
