package ports

import (
	"context"

	"go.trai.ch/dmc/internal/core/domain"
)

// Fingerprinter derives cache keys from the preprocessed form of source files.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns one pair per source, in the order of sources.
	Fingerprint(
		ctx context.Context,
		sources []domain.SourceFile,
		flags string,
	) ([]domain.FingerprintedSource, error)
}
