package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/chatmark/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree creates files under a fresh temp dir and returns the dir.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f), 0o644))
	}
	return dir
}

func TestExpand(t *testing.T) {
	t.Parallel()

	t.Run("matches files with simple pattern", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, "a.md", "b.md", "c.txt")
		got, err := fs.Expand([]string{filepath.Join(dir, "*.md")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}, got)
	})

	t.Run("matches files recursively with doublestar", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, "top.md", "sub/deep/nested.md", "sub/skip.txt")
		got, err := fs.Expand([]string{filepath.Join(dir, "**", "*.md")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "sub", "deep", "nested.md"),
			filepath.Join(dir, "top.md"),
		}, got)
	})

	t.Run("literal paths and duplicates", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, "a.md", "b.md")
		a := filepath.Join(dir, "a.md")
		got, err := fs.Expand([]string{a, filepath.Join(dir, "*.md")})
		require.NoError(t, err)
		assert.Equal(t, []string{a, filepath.Join(dir, "b.md")}, got)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Expand([]string{"[unclosed"})
		assert.ErrorIs(t, err, fs.ErrInvalidPattern)
	})

	t.Run("pattern without matches", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, "a.txt")
		_, err := fs.Expand([]string{filepath.Join(dir, "*.md")})
		assert.ErrorIs(t, err, fs.ErrNoMatches)
	})

	t.Run("missing literal path", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Expand([]string{filepath.Join(t.TempDir(), "missing.md")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Expand([]string{t.TempDir()})
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("reads in order", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, "a.md", "b.md")
		paths := []string{filepath.Join(dir, "b.md"), filepath.Join(dir, "a.md")}
		got, err := fs.Read(paths)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, fs.Source{Path: paths[0], Content: "# b.md"}, got[0])
		assert.Equal(t, "# a.md", got[1].Content)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Read([]string{filepath.Join(t.TempDir(), "nope.md")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
