package ports

import "go.trai.ch/dmc/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the layered configuration for the workspace rooted at root.
	Load(root string) (*domain.BuildConfiguration, error)
}
