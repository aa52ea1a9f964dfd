package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks the existence of build targets.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// TargetsExist returns true if all paths exist. A path that cannot be
// inspected for a reason other than absence is reported as an error.
func (v *Verifier) TargetsExist(paths []string) (bool, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat target"), "path", path)
		}
	}
	return true, nil
}
