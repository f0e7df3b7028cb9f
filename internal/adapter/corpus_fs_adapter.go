// Package adapter contains the filesystem and persistence adapters used by the fuzzmut CLI.
package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const recursiveSuffix = "/..."

// CorpusFSAdapter hides direct os access from the workflow so batch runs can
// be tested without touching the disk.
type CorpusFSAdapter interface {
	// Get resolves path patterns into corpus files. A trailing "/..." walks
	// the directory recursively, a plain directory lists only its own files.
	// Paths matching any exclude regex are dropped.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.File, error)

	// Walk traverses root. When recursive is false sub-directories are skipped.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a corpus file.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// WriteFile atomically replaces path with content, creating parent
	// directories as needed.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape of filepath.Walk without
// leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalCorpusFSAdapter implements CorpusFSAdapter on the local filesystem.
type LocalCorpusFSAdapter struct{}

// NewLocalCorpusFSAdapter constructs a LocalCorpusFSAdapter.
func NewLocalCorpusFSAdapter() *LocalCorpusFSAdapter {
	return &LocalCorpusFSAdapter{}
}

// Get expands paths into a sorted, de-duplicated list of corpus files.
func (a *LocalCorpusFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.File, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[string]struct{})

	var files []m.File

	for _, pattern := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitPattern(string(pattern))

		err := a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}

				return nil
			}

			if !info.Mode().IsRegular() || excluded(path, patterns) {
				return nil
			}

			if _, ok := seen[path]; ok {
				return nil
			}

			seen[path] = struct{}{}

			file, err := a.describe(root, path)
			if err != nil {
				return err
			}

			files = append(files, file)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].FullPath < files[j].FullPath
	})

	return files, nil
}

func (a *LocalCorpusFSAdapter) describe(root, path string) (m.File, error) {
	hash, err := a.HashFile(m.Path(path))
	if err != nil {
		return m.File{}, fmt.Errorf("hash %s: %w", path, err)
	}

	short := path
	if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
		short = rel
	}

	return m.File{
		FullPath:  m.Path(path),
		ShortPath: m.Path(short),
		Hash:      hash,
	}, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if strings.HasSuffix(pattern, recursiveSuffix) {
		root := strings.TrimSuffix(pattern, recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return filepath.Clean(root), true
	}

	return filepath.Clean(pattern), false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		if strings.TrimSpace(expr) == "" {
			continue
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func excluded(path string, patterns []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range patterns {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalCorpusFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalCorpusFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - corpus paths are supplied by the operator
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalCorpusFSAdapter) HashFile(path m.Path) (string, error) {
	// #nosec G304 - corpus paths are supplied by the operator
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// WriteFile writes content through a temporary file and renames it into place.
func (a *LocalCorpusFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return atomic.WriteFile(string(path), bytes.NewReader(content))
}

// JoinPath joins path elements into a single path.
func (a *LocalCorpusFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
