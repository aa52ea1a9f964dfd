package fs

import (
	"os"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.WriteGuard = (*Guard)(nil)

// ownerWrite is the permission bit the relocation tools need.
const ownerWrite os.FileMode = 0o200

// Guard lends owner-write permission on a file for the duration of a callback.
// Installed libraries are frequently read-only.
type Guard struct{}

// NewGuard creates a new Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// WithWritable runs fn with path writable by its owner. The original mode is
// restored afterwards, also when fn fails or panics.
func (g *Guard) WithWritable(path string, fn func() error) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPermissionChangeFailed.Error()), "path", path)
	}

	mode := info.Mode().Perm()
	if mode&ownerWrite != 0 {
		return fn()
	}

	if err := os.Chmod(path, mode|ownerWrite); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPermissionChangeFailed.Error()), "path", path)
	}
	defer func() {
		if restoreErr := os.Chmod(path, mode); restoreErr != nil && err == nil {
			err = zerr.With(zerr.Wrap(restoreErr, domain.ErrPermissionChangeFailed.Error()), "path", path)
		}
	}()

	return fn()
}
