// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/dmc/internal/core/domain"
)

// Executor runs external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run starts cmd, streams its standard output to stdout and waits for it to exit.
	//
	// A process that ran to completion is reported through the ProcessResult, including a
	// non-zero exit code; the caller decides whether that is a failure. The error is non-nil
	// only when the process could not be started, timed out, or the context was cancelled.
	Run(ctx context.Context, cmd domain.Command, stdout io.Writer) (domain.ProcessResult, error)
}
