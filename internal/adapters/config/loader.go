// Package config provides the configuration loader for dmc.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// LookupFunc retrieves the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// Loader implements ports.ConfigLoader.
//
// Precedence, lowest first: defaults, dmc.yaml, .dmc.env, process environment.
type Loader struct {
	logger ports.Logger
	lookup LookupFunc
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, lookup: os.LookupEnv}
}

// WithLookup replaces the environment lookup, primarily for tests.
func (l *Loader) WithLookup(lookup LookupFunc) *Loader {
	l.lookup = lookup
	return l
}

// Load builds the configuration of the workspace at root.
func (l *Loader) Load(root string) (*domain.BuildConfiguration, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "root", root)
	}

	cfg := domain.DefaultBuildConfiguration(abs)

	if err := l.applyFile(&cfg, filepath.Join(abs, domain.ConfigFileName)); err != nil {
		return nil, err
	}

	dotenv, err := readDotenv(filepath.Join(abs, domain.EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg, func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, zerr.With(err, "source", domain.EnvFileName)
	}

	if err := applyEnv(&cfg, l.lookup); err != nil {
		return nil, zerr.With(err, "source", "environment")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	l.logger.Debug("configuration loaded",
		"root", cfg.Root,
		"compiler", cfg.Compiler,
		"jobs", cfg.Jobs,
		"schedule", string(cfg.Schedule),
		"dev", cfg.Dev,
		"single_thread", cfg.SingleThread,
	)
	return &cfg, nil
}

func (l *Loader) applyFile(cfg *domain.BuildConfiguration, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the workspace
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	// Allow ${VAR} references to the environment.
	expanded := os.Expand(string(data), func(key string) string {
		v, _ := l.lookup(key)
		return v
	})

	var file FileConfig
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := applyFileConfig(cfg, &file); err != nil {
		return zerr.With(err, "path", path)
	}
	return nil
}

func applyFileConfig(cfg *domain.BuildConfiguration, file *FileConfig) error {
	if file.Compiler != "" {
		cfg.Compiler = file.Compiler
	}
	if file.Linker != "" {
		cfg.LinkerOverride = file.Linker
	}
	if file.Jobs != nil {
		cfg.Jobs = *file.Jobs
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if file.Dev != nil {
		cfg.Dev = *file.Dev
	}
	if file.SingleThread != nil {
		cfg.SingleThread = *file.SingleThread
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "timeout", file.Timeout)
		}
		cfg.JobTimeout = d
	}
	if file.Schedule != "" {
		cfg.Schedule = domain.ScheduleStrategy(file.Schedule)
	}
	if file.Output != "" {
		cfg.OutputName = file.Output
	}
	if file.ObjExt != "" {
		cfg.ObjExt = file.ObjExt
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return values, nil
}

// applyEnv overlays the DMC_* variables visible through lookup onto cfg.
func applyEnv(cfg *domain.BuildConfiguration, lookup LookupFunc) error {
	if v, ok := lookup(domain.EnvDebug); ok {
		cfg.Debug = ParseBool(v)
	}
	if v, ok := lookup(domain.EnvSThread); ok {
		cfg.SingleThread = ParseBool(v)
	}
	if v, ok := lookup(domain.EnvDev); ok {
		cfg.Dev = ParseBool(v)
	}
	if v, ok := lookup(domain.EnvLinker); ok && v != "" {
		cfg.LinkerOverride = v
	}
	if v, ok := lookup(domain.EnvCompiler); ok && v != "" {
		cfg.Compiler = v
	}
	if v, ok := lookup(domain.EnvJobs); ok && v != "" {
		jobs, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), domain.EnvJobs, v)
		}
		cfg.Jobs = jobs
	}
	if v, ok := lookup(domain.EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), domain.EnvTimeout, v)
		}
		cfg.JobTimeout = d
	}
	if v, ok := lookup(domain.EnvSchedule); ok && v != "" {
		cfg.Schedule = domain.ScheduleStrategy(strings.ToLower(strings.TrimSpace(v)))
	}
	return nil
}

// ParseBool interprets a boolean option. Any value enables the option except the
// false-like strings 0, false, no and off.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// Validate checks that every value of cfg is in range.
func Validate(cfg *domain.BuildConfiguration) error {
	switch {
	case cfg.Jobs < 0:
		return zerr.With(domain.ErrInvalidConfig, "jobs", cfg.Jobs)
	case cfg.JobTimeout < 0:
		return zerr.With(domain.ErrInvalidConfig, "timeout", cfg.JobTimeout.String())
	case cfg.Schedule != domain.ScheduleStride && cfg.Schedule != domain.ScheduleQueue:
		return zerr.With(domain.ErrInvalidConfig, "schedule", string(cfg.Schedule))
	case cfg.ObjExt == "" || strings.ContainsAny(cfg.ObjExt, `/\`):
		return zerr.With(domain.ErrInvalidConfig, "obj_ext", cfg.ObjExt)
	case cfg.OutputName == "" || strings.ContainsAny(cfg.OutputName, `/\`):
		return zerr.With(domain.ErrInvalidConfig, "output", cfg.OutputName)
	case cfg.Compiler == "":
		return zerr.With(domain.ErrInvalidConfig, "compiler", cfg.Compiler)
	}
	return nil
}
