// Package source enumerates the candidate photos of a wall.
//
// A [Dir] lists a directory once, sorts the entry names and optionally
// shuffles them once, then hands out full paths forever: when the list is
// exhausted it starts over from the first entry. Entries are returned raw,
// without following symbolic links or filtering non-images.
package source

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	perrors "github.com/matzehuels/photowall/pkg/errors"
)

// Source produces an endless sequence of candidate paths.
type Source interface {
	Next() string
	// Len is the period of the sequence.
	Len() int
}

// Dir is a cyclic Source over the entries of one directory.
// It is not safe for concurrent use.
type Dir struct {
	dir   string
	names []string
	idx   int
}

// NewDir lists dir. When rng is non-nil the sorted entries are shuffled once
// with it. It fails with *errors.SourceEmptyError if dir has no entries.
func NewDir(dir string, rng *rand.Rand) (*Dir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &perrors.SourceEmptyError{Dir: dir}
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	slices.Sort(names)

	if rng != nil {
		rng.Shuffle(len(names), func(i, j int) {
			names[i], names[j] = names[j], names[i]
		})
	}
	return &Dir{dir: dir, names: names}, nil
}

// Next returns the path at the cursor and advances it.
func (d *Dir) Next() string {
	name := d.names[d.idx]
	d.idx = (d.idx + 1) % len(d.names)
	return filepath.Join(d.dir, name)
}

// Len returns the number of entries.
func (d *Dir) Len() int {
	return len(d.names)
}

var _ Source = (*Dir)(nil)
