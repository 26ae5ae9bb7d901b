package ports

import "time"

// Metrics records build counters and durations.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncCacheLookup(hit bool)
	IncCompile(success bool)
	ObserveBuild(d time.Duration, success bool)
	// WriteTextfile exports the current values in the Prometheus text format.
	WriteTextfile(path string) error
}
