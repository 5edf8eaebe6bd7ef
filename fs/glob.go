package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves each argument to files. Arguments without glob
// metacharacters name a single file; others are doublestar patterns, so
// "notes/**/*.md" matches recursively. The result is sorted and free of
// duplicates. Every argument must match at least one file.
func Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := expand(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func expand(arg string) ([]string, error) {
	pattern := filepath.ToSlash(arg)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, arg)
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s: is a directory", arg)
		}
		return []string{filepath.Clean(arg)}, nil
	}

	base, rest := doublestar.SplitPattern(pattern)
	var matches []string
	err := doublestar.GlobWalk(os.DirFS(filepath.FromSlash(base)), rest, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, arg)
	}
	return matches, nil
}

// Read reads every path in order.
func Read(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		sources = append(sources, Source{Path: path, Content: string(data)})
	}
	return sources, nil
}
