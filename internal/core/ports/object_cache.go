package ports

import (
	"context"

	"go.trai.ch/dmc/internal/core/domain"
)

// BuildFunc produces an object at tmpPath. It is only called on a cache miss.
type BuildFunc func(ctx context.Context, tmpPath string) error

// ObjectCache is the content addressed object store.
//
//go:generate go run go.uber.org/mock/mockgen -source=object_cache.go -destination=mocks/mock_object_cache.go -package=mocks
type ObjectCache interface {
	// Path returns the object path for a fingerprint, whether or not it exists.
	Path(fp domain.Fingerprint) string

	// Lookup reports whether an object exists for fp.
	Lookup(fp domain.Fingerprint) (bool, error)

	// Ensure makes sure an object exists for fp, calling build on a miss.
	// Concurrent calls for the same fingerprint run build at most once.
	// It reports hit=true when no build was run by this call.
	Ensure(ctx context.Context, fp domain.Fingerprint, build BuildFunc) (hit bool, err error)
}
