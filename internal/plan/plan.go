// Package plan matches files against a glob pattern and orders them for
// collision-safe renaming.
package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/nsedgwick/renum/internal/name"
)

// ErrNoMatch is returned when the pattern matches no regular files.
var ErrNoMatch = errors.New("no files match pattern")

// Entry is one matched file with its decomposed basename. Entries are
// built once at scan time, never mutated, and consumed by the renamer.
type Entry struct {
	Path  string // original path as matched
	Dir   string
	Base  string
	Parts name.Parts
}

// Match expands pattern against fs and returns one Entry per regular
// file, in glob enumeration order (lexically sorted, the filepath.Glob
// contract). Directories are excluded. Character classes like [0-9]
// are supported.
func Match(fs afero.Fs, pattern string) ([]Entry, error) {
	paths, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		info, err := fs.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		base := filepath.Base(p)
		entries = append(entries, Entry{
			Path:  p,
			Dir:   filepath.Dir(p),
			Base:  base,
			Parts: name.Split(base),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	return entries, nil
}

// Build orders entries into a processing plan for the given shift.
//
// Shifting up processes the highest-numbered files first so each
// vacated slot is staged before a lower-numbered file moves toward it;
// shifting down is the mirror image. The staging indirection already
// makes any order safe, so this only fixes the user-visible processing
// order. The sort is stable: equal numbers keep enumeration order.
func Build(entries []Entry, shift int64) []Entry {
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b Entry) int {
		switch {
		case a.Parts.Number == b.Parts.Number:
			return 0
		case a.Parts.Number < b.Parts.Number:
			if shift < 0 {
				return -1
			}
			return 1
		default:
			if shift < 0 {
				return 1
			}
			return -1
		}
	})
	return ordered
}
