package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher digests a node fingerprint together with its source files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return digest.Sum64(), nil
}

// ComputeInputHash returns a hex digest of the fingerprint and the content of
// every source. Sources are visited in the given order; directories are
// walked and glob patterns expanded.
func (h *Hasher) ComputeInputHash(fingerprint string, sources []string) (string, error) {
	digest := xxhash.New()

	_, _ = digest.WriteString(fingerprint)
	_, _ = digest.Write([]byte{0})

	for _, source := range sources {
		if err := h.hashSource(source, digest); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// hashSource hashes a single source, falling back to glob resolution when
// the path does not exist as written.
func (h *Hasher) hashSource(source string, digest io.Writer) error {
	if _, err := os.Stat(source); err == nil {
		return h.hashPath(source, digest)
	}

	matches, err := filepath.Glob(source)
	if err != nil || len(matches) == 0 {
		return zerr.With(zerr.New("source not found"), "path", source)
	}
	for _, match := range matches {
		if err := h.hashPath(match, digest); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashPath(path string, digest io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, digest)
	}
	for file := range h.walker.WalkFiles(path) {
		if err := h.hashFile(file, digest); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, digest io.Writer) error {
	_, _ = digest.Write([]byte(path))
	_, _ = digest.Write([]byte{0})

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
