// Package fingerprint computes content fingerprints of preprocessed sources.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"errors"
	"hash"
	"runtime"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter implements ports.Fingerprinter using SHA-256 over preprocessor output.
type Fingerprinter struct {
	preprocessor ports.Preprocessor
	logger       ports.Logger
	workers      int
}

// New creates a Fingerprinter that preprocesses up to workers files at once.
// A non-positive workers value uses the number of CPUs.
func New(preprocessor ports.Preprocessor, logger ports.Logger, workers int) *Fingerprinter {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Fingerprinter{
		preprocessor: preprocessor,
		logger:       logger,
		workers:      workers,
	}
}

// Fingerprint returns one FingerprintedSource per source, in input order.
// Every failing file is reported; no partial result is returned.
func (f *Fingerprinter) Fingerprint(
	ctx context.Context,
	sources []domain.SourceFile,
	flags string,
) ([]domain.FingerprintedSource, error) {
	results := make([]domain.FingerprintedSource, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(f.workers)
	for i, src := range sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fp, err := f.one(ctx, src, flags)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = domain.FingerprintedSource{Source: src, Fingerprint: fp}
			f.logger.Debug("fingerprint", "file", src.Path, "fingerprint", fp.String())
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrFingerprintFailed.Error())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, errors.Join(domain.ErrFingerprintFailed, err)
	}
	return results, nil
}

func (f *Fingerprinter) one(ctx context.Context, src domain.SourceFile, flags string) (domain.Fingerprint, error) {
	w := NewLineHasher()
	if err := f.preprocessor.Preprocess(ctx, src, flags, w); err != nil {
		return "", err
	}
	return w.Fingerprint(), nil
}

// LineHasher is an io.Writer that hashes the lines written to it with their
// terminators stripped, so the digest equals the hash of the concatenated lines.
type LineHasher struct {
	h hash.Hash
}

// NewLineHasher creates an empty LineHasher.
func NewLineHasher() *LineHasher {
	return &LineHasher{h: sha256.New()}
}

// Write feeds p into the digest, dropping line feeds.
func (l *LineHasher) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b != '\n' {
			continue
		}
		if i > start {
			_, _ = l.h.Write(p[start:i])
		}
		start = i + 1
	}
	if start < len(p) {
		_, _ = l.h.Write(p[start:])
	}
	return len(p), nil
}

// Fingerprint returns the digest of everything written so far.
func (l *LineHasher) Fingerprint() domain.Fingerprint {
	return domain.NewFingerprint(l.h.Sum(nil))
}

// Compute is a convenience for hashing a complete preprocessed output.
func Compute(preprocessed []byte) domain.Fingerprint {
	w := NewLineHasher()
	_, _ = w.Write(preprocessed)
	return w.Fingerprint()
}
