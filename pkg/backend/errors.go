package backend

import (
	"errors"

	perrors "github.com/matzehuels/photowall/pkg/errors"
)

// Failed converts a backend failure into a *errors.CompositionError whose Op
// is the failed operation, or fallback when err carries none.
func Failed(fallback string, err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return perrors.Composition(be.Op, be.Err)
	}
	return perrors.Composition(fallback, err)
}
