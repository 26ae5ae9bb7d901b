package app

import (
	"go.trai.ch/dmc/internal/adapters/config"
	"go.trai.ch/dmc/internal/core/domain"
)

// Overrides holds command line values. A nil pointer or empty string leaves the loaded value as is.
type Overrides struct {
	Debug        *bool
	SingleThread *bool
	Dev          *bool
	Jobs         *int
	Linker       string
	Schedule     string
}

// BuildOptions configures one run of the pipeline.
type BuildOptions struct {
	// Root is the workspace root. Empty means the current directory.
	Root string
	// Overrides are applied on top of the loaded configuration.
	Overrides Overrides
	// MetricsFile, when set, receives the metrics in the Prometheus text format after the build.
	MetricsFile string
}

func (o BuildOptions) root() string {
	if o.Root == "" {
		return "."
	}
	return o.Root
}

// apply writes the set overrides into cfg and validates the result.
func (o Overrides) apply(cfg *domain.BuildConfiguration) error {
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}
	if o.SingleThread != nil {
		cfg.SingleThread = *o.SingleThread
	}
	if o.Dev != nil {
		cfg.Dev = *o.Dev
	}
	if o.Jobs != nil {
		cfg.Jobs = *o.Jobs
	}
	if o.Linker != "" {
		cfg.LinkerOverride = o.Linker
	}
	if o.Schedule != "" {
		cfg.Schedule = domain.ScheduleStrategy(o.Schedule)
	}
	return config.Validate(cfg)
}
