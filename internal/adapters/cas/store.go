// Package cas implements the content addressed object store.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.ObjectCache = (*Store)(nil)

// Store implements ports.ObjectCache as a flat directory of <fingerprint>.<ext> files.
// Entries are only ever added.
type Store struct {
	dir   string
	ext   string
	group singleflight.Group
}

// NewStore creates the store directory if needed and returns a Store rooted there.
func NewStore(dir, ext string) (*Store, error) {
	if ext == "" {
		ext = domain.DefaultObjExt
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", dir)
	}
	return &Store{dir: dir, ext: ext}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the object path for fp.
func (s *Store) Path(fp domain.Fingerprint) string {
	return filepath.Join(s.dir, fp.String()+"."+s.ext)
}

// Lookup reports whether an object exists for fp.
func (s *Store) Lookup(fp domain.Fingerprint) (bool, error) {
	_, err := os.Stat(s.Path(fp))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, domain.ErrCacheLookupFailed.Error()), "fingerprint", fp.String())
}

// Ensure makes sure an object exists for fp. On a miss, build writes the object into a
// temporary file inside the store which is then renamed onto the final path.
// Concurrent callers for the same fingerprint share a single build.
func (s *Store) Ensure(ctx context.Context, fp domain.Fingerprint, build ports.BuildFunc) (bool, error) {
	if ok, err := s.Lookup(fp); err != nil || ok {
		return ok, err
	}

	// Only the leader of a flight runs fn; followers share its result.
	leader := false
	v, err, _ := s.group.Do(fp.String(), func() (any, error) {
		leader = true
		// Another flight may have committed between the lookup and this call.
		if ok, err := s.Lookup(fp); err != nil || ok {
			return ok, err
		}
		return false, s.commit(ctx, fp, build)
	})
	if err != nil {
		return false, err
	}

	hit, _ := v.(bool)
	return hit || !leader, nil
}

func (s *Store) commit(ctx context.Context, fp domain.Fingerprint, build ports.BuildFunc) error {
	tmp, err := os.CreateTemp(s.dir, fp.String()+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCommitFailed.Error()), "fingerprint", fp.String())
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := build(ctx, tmpPath); err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCommitFailed.Error()), "fingerprint", fp.String())
	}
	if err := os.Rename(tmpPath, s.Path(fp)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCommitFailed.Error()), "fingerprint", fp.String())
	}
	committed = true
	return nil
}
