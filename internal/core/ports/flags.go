package ports

import (
	"context"

	"go.trai.ch/dmc/internal/core/domain"
)

// FlagResolver runs stage scripts and collapses their output into flag strings.
//
//go:generate go run go.uber.org/mock/mockgen -source=flags.go -destination=mocks/mock_flags.go -package=mocks
type FlagResolver interface {
	// Resolve runs the script for stage once per run and returns its stdout lines,
	// each followed by a single space.
	Resolve(ctx context.Context, stage domain.Stage) (string, error)
}
