package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

func TestLocalCorpusFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalCorpusFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "seed.txt"), "seed\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.txt"), "child\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, _ os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.NotContains(t, visited, nestedDir)
		assert.NotContains(t, visited, filepath.Join(nestedDir, "child.txt"))
		assert.Contains(t, visited, filepath.Join(root, "seed.txt"))
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalCorpusFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.txt")
		writeTestFile(t, child, "child\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, _ os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)
		assert.Contains(t, visited, child)
	})
}

func TestLocalCorpusFSAdapter_Get(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "b.txt"), "bbb")
	writeTestFile(t, filepath.Join(root, "a.txt"), "aaa")
	writeTestFile(t, filepath.Join(root, "generated_skip.txt"), "skip")
	mustMkdir(t, filepath.Join(root, "deep"))
	writeTestFile(t, filepath.Join(root, "deep", "c.txt"), "ccc")
	mustMkdir(t, filepath.Join(root, ".hidden"))
	writeTestFile(t, filepath.Join(root, ".hidden", "d.txt"), "ddd")

	adapter := NewLocalCorpusFSAdapter()

	t.Run("plain directory lists own files", func(t *testing.T) {
		files, err := adapter.Get(context.Background(), []m.Path{m.Path(root)}, "generated_")
		require.NoError(t, err)
		require.Len(t, files, 2)

		assert.Equal(t, m.Path(filepath.Join(root, "a.txt")), files[0].FullPath)
		assert.Equal(t, m.Path("a.txt"), files[0].ShortPath)
		assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte("aaa"))), files[0].Hash)
		assert.Equal(t, m.Path(filepath.Join(root, "b.txt")), files[1].FullPath)
	})

	t.Run("recursive pattern skips hidden directories", func(t *testing.T) {
		files, err := adapter.Get(context.Background(), []m.Path{m.Path(root + "/...")})
		require.NoError(t, err)

		var shorts []m.Path
		for _, file := range files {
			shorts = append(shorts, file.ShortPath)
		}

		assert.Equal(t, []m.Path{"a.txt", "b.txt", m.Path(filepath.Join("deep", "c.txt")), "generated_skip.txt"}, shorts)
	})

	t.Run("overlapping patterns are de-duplicated", func(t *testing.T) {
		files, err := adapter.Get(context.Background(), []m.Path{m.Path(root), m.Path(filepath.Join(root, "a.txt"))})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		_, err := adapter.Get(context.Background(), []m.Path{m.Path(root)}, "([")
		require.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := adapter.Get(context.Background(), []m.Path{m.Path(filepath.Join(root, "missing"))})
		require.Error(t, err)
	})
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		pattern   string
		root      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"corpus/...", "corpus", true},
		{"corpus", "corpus", false},
		{"./corpus/", "corpus", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, recursive := splitPattern(tt.pattern)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func TestLocalCorpusFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalCorpusFSAdapter()
	path := adapter.JoinPath(t.TempDir(), "out", "byte-drop", "case-0")

	require.NoError(t, adapter.WriteFile(context.Background(), path, []byte("first")))
	require.NoError(t, adapter.WriteFile(context.Background(), path, []byte("second")))

	data, err := adapter.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, adapter.WriteFile(ctx, path, []byte("third")), context.Canceled)
	_, err = adapter.ReadFile(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o750))
}
