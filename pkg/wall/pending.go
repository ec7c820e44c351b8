package wall

import "os"

// PendingKind tells how a carried-over piece is to be consumed.
type PendingKind int

const (
	// Requeue carries an original source file that did not fit.
	Requeue PendingKind = iota
	// Fragment carries the cut-off remainder of a wrapped image, stored in
	// a temporary file owned by the composer.
	Fragment
)

func (k PendingKind) String() string {
	if k == Fragment {
		return "fragment"
	}
	return "requeue"
}

// Pending is the piece the next row starts with.
type Pending struct {
	Kind PendingKind
	Path string
	// Origin is the source file the piece comes from; captions and progress
	// reports use it instead of a fragment's temporary path.
	Origin string
}

// Release deletes the temporary file of a fragment. It is a no-op for a nil
// Pending and for requeued originals.
func (p *Pending) Release() error {
	if p == nil || p.Kind != Fragment {
		return nil
	}
	if err := os.Remove(p.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
