// Package linker assembles the cached objects of a build into the final executable.
package linker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

// MoldFallbackPath is checked when mold is not on PATH.
const MoldFallbackPath = "/usr/local/bin/mold"

// BuildLinkSet maps every item to its object path, in item order.
// Items sharing a fingerprint reference the same object.
func BuildLinkSet(cache ports.ObjectCache, items []domain.FingerprintedSource) domain.LinkSet {
	set := make(domain.LinkSet, len(items))
	for i, item := range items {
		set[i] = cache.Path(item.Fingerprint)
	}
	return set
}

// SelectLinker returns the link backend: the override when set, mold when it can be found,
// ld otherwise.
func SelectLinker(
	override string,
	lookPath func(file string) (string, error),
	isExecutable func(file string) bool,
) string {
	if override != "" {
		return override
	}
	if lookPath != nil {
		if _, err := lookPath(domain.LinkerMold); err == nil {
			return domain.LinkerMold
		}
	}
	if isExecutable != nil && isExecutable(MoldFallbackPath) {
		return domain.LinkerMold
	}
	return domain.LinkerDefault
}

// Request describes the link of one build.
type Request struct {
	Items       []domain.FingerprintedSource
	Backend     string
	Flags       string
	LinkerFlags string
	Output      string
}

// Result describes a linked executable.
type Result struct {
	LinkSet  domain.LinkSet
	Backend  string
	Output   string
	Digest   string
	Duration time.Duration
}

// Stage runs the single link invocation of a build.
type Stage struct {
	cache     ports.ObjectCache
	linker    ports.Linker
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewStage creates a new Stage.
func NewStage(
	cache ports.ObjectCache,
	linker ports.Linker,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Stage {
	return &Stage{
		cache:     cache,
		linker:    linker,
		hasher:    hasher,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run links every object of req.Items into req.Output. It must only be called after the
// compile barrier, when every object exists.
func (s *Stage) Run(ctx context.Context, req Request) (Result, error) {
	if len(req.Items) == 0 {
		return Result{}, domain.ErrNoSources
	}

	start := time.Now()
	res := Result{
		LinkSet: BuildLinkSet(s.cache, req.Items),
		Backend: req.Backend,
		Output:  req.Output,
	}

	if err := os.MkdirAll(filepath.Dir(req.Output), domain.DirPerm); err != nil {
		return res, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "output", req.Output)
	}

	ctx, vertex := s.telemetry.Record(ctx, "link "+filepath.Base(req.Output))
	s.logger.Debug("linking", "objects", len(res.LinkSet), "backend", req.Backend, "output", req.Output)

	err := s.linker.Link(ctx, domain.LinkRequest{
		Backend:     req.Backend,
		Objects:     res.LinkSet,
		Flags:       req.Flags,
		LinkerFlags: req.LinkerFlags,
		Output:      req.Output,
	})
	vertex.Complete(err)
	if err != nil {
		return res, err
	}

	sum, err := s.hasher.ComputeFileHash(req.Output)
	if err != nil {
		return res, zerr.With(err, "output", req.Output)
	}
	res.Digest = fmt.Sprintf("%016x", sum)
	res.Duration = time.Since(start)
	return res, nil
}
