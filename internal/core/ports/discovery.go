package ports

import "go.trai.ch/dmc/internal/core/domain"

// SourceDiscoverer finds the source files of a build.
//
//go:generate go run go.uber.org/mock/mockgen -source=discovery.go -destination=mocks/mock_discovery.go -package=mocks
type SourceDiscoverer interface {
	// Discover returns every non-directory entry below dir in a stable order.
	Discover(dir string) ([]domain.SourceFile, error)
}
