package input

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// DefaultDir is the directory scanned when no files are given.
const DefaultDir = "input"

// DefaultPattern matches the CSV files of a directory scan.
const DefaultPattern = "*.csv"

// ErrNoInputFiles reports that path resolution produced nothing to read.
// It is surfaced before any output is created.
var ErrNoInputFiles = errors.New("input: no CSV files found")

// Resolve turns the command surface's inputs into an ordered list of file
// paths. Explicit paths win over a directory scan; with neither, the
// default input directory is scanned. Directory scans are sorted for a
// stable record order across runs.
func Resolve(paths []string, dir, pattern string) ([]string, error) {
	if len(paths) > 0 {
		return paths, nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("input: bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, filepath.Join(dir, pattern))
	}
	sort.Strings(matches)
	return matches, nil
}
