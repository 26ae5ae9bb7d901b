package fs

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of files and directory trees.
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

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeTreeHash computes a single digest over the paths and contents of every file
// below the given roots. Missing roots contribute nothing.
func (h *Hasher) ComputeTreeHash(roots ...string) (uint64, error) {
	hasher := xxhash.New()
	var buf [8]byte

	for _, root := range roots {
		for path := range h.walker.WalkFiles(root, nil) {
			sum, err := h.ComputeFileHash(path)
			if err != nil {
				return 0, err
			}

			_, _ = hasher.WriteString(filepath.ToSlash(path))
			_, _ = hasher.Write([]byte{0})
			binary.LittleEndian.PutUint64(buf[:], sum)
			_, _ = hasher.Write(buf[:])
		}
		_, _ = hasher.Write([]byte{0}) // Root separator
	}

	return hasher.Sum64(), nil
}
