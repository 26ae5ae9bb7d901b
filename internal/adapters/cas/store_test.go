package cas_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/cas"
	"go.trai.ch/dmc/internal/core/domain"
)

func fingerprint(s string) domain.Fingerprint {
	sum := sha256.Sum256([]byte(s))
	return domain.NewFingerprint(sum[:])
}

func writeObject(content string) func(context.Context, string) error {
	return func(_ context.Context, tmpPath string) error {
		return os.WriteFile(tmpPath, []byte(content), domain.FilePerm)
	}
}

func TestNewStore_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".obj_cache")
	store, err := cas.NewStore(dir, "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, store.Dir())
}

func TestStore_Path(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := cas.NewStore(dir, "obj")
	require.NoError(t, err)

	fp := fingerprint("a")
	assert.Equal(t, filepath.Join(dir, fp.String()+".obj"), store.Path(fp))
}

func TestStore_Ensure(t *testing.T) {
	t.Parallel()

	t.Run("miss builds and commits", func(t *testing.T) {
		t.Parallel()
		store, err := cas.NewStore(t.TempDir(), "o")
		require.NoError(t, err)
		fp := fingerprint("a")

		ok, err := store.Lookup(fp)
		require.NoError(t, err)
		assert.False(t, ok)

		hit, err := store.Ensure(context.Background(), fp, writeObject("object-a"))
		require.NoError(t, err)
		assert.False(t, hit)

		data, err := os.ReadFile(store.Path(fp))
		require.NoError(t, err)
		assert.Equal(t, "object-a", string(data))

		ok, err = store.Lookup(fp)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("hit skips build", func(t *testing.T) {
		t.Parallel()
		store, err := cas.NewStore(t.TempDir(), "o")
		require.NoError(t, err)
		fp := fingerprint("b")

		_, err = store.Ensure(context.Background(), fp, writeObject("first"))
		require.NoError(t, err)

		hit, err := store.Ensure(context.Background(), fp, func(context.Context, string) error {
			t.Fatal("build must not run on a hit")
			return nil
		})
		require.NoError(t, err)
		assert.True(t, hit)

		data, err := os.ReadFile(store.Path(fp))
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("failed build leaves no entry", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		store, err := cas.NewStore(dir, "o")
		require.NoError(t, err)
		fp := fingerprint("c")
		buildErr := errors.New("compiler exploded")

		hit, err := store.Ensure(context.Background(), fp, func(_ context.Context, tmpPath string) error {
			// Partial output must never become visible.
			_ = os.WriteFile(tmpPath, []byte("partial"), domain.FilePerm)
			return buildErr
		})
		require.ErrorIs(t, err, buildErr)
		assert.False(t, hit)

		ok, err := store.Lookup(fp)
		require.NoError(t, err)
		assert.False(t, ok)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary files must be removed")
	})

	t.Run("distinct fingerprints distinct entries", func(t *testing.T) {
		t.Parallel()
		store, err := cas.NewStore(t.TempDir(), "o")
		require.NoError(t, err)
		fpA, fpB := fingerprint("a"), fingerprint("b")

		_, err = store.Ensure(context.Background(), fpA, writeObject("A"))
		require.NoError(t, err)
		_, err = store.Ensure(context.Background(), fpB, writeObject("B"))
		require.NoError(t, err)

		assert.NotEqual(t, store.Path(fpA), store.Path(fpB))
		a, err := os.ReadFile(store.Path(fpA))
		require.NoError(t, err)
		b, err := os.ReadFile(store.Path(fpB))
		require.NoError(t, err)
		assert.Equal(t, "A", string(a))
		assert.Equal(t, "B", string(b))
	})
}

func TestStore_Ensure_ConcurrentSameFingerprint(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore(t.TempDir(), "o")
	require.NoError(t, err)
	fp := fingerprint("shared")

	var builds atomic.Int32
	release := make(chan struct{})
	build := func(_ context.Context, tmpPath string) error {
		builds.Add(1)
		<-release
		return os.WriteFile(tmpPath, []byte("shared"), domain.FilePerm)
	}

	const callers = 8
	var wg sync.WaitGroup
	hits := make([]bool, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits[i], errs[i] = store.Ensure(context.Background(), fp, build)
		}()
	}

	// Give every caller a chance to join the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load(), "only one build per fingerprint")
	misses := 0
	for i := range callers {
		require.NoError(t, errs[i])
		if !hits[i] {
			misses++
		}
	}
	assert.Equal(t, 1, misses)
}
