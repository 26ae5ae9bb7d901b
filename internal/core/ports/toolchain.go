package ports

import (
	"context"
	"io"

	"go.trai.ch/dmc/internal/core/domain"
)

// Preprocessor expands a source file with its includes and macros.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Preprocessor interface {
	// Preprocess streams the preprocessed form of src to stdout.
	Preprocess(ctx context.Context, src domain.SourceFile, flags string, stdout io.Writer) error
}

// Compiler turns one source file into an object.
type Compiler interface {
	// Compile compiles src into the object at out.
	Compile(ctx context.Context, src domain.SourceFile, out string, flags string) error
}

// Linker assembles objects into the final executable.
type Linker interface {
	// Link invokes the link step once for the whole request.
	Link(ctx context.Context, req domain.LinkRequest) error
}
