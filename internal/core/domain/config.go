package domain

import (
	"path/filepath"
	"runtime"
	"time"
)

// ScheduleStrategy selects how the compile scheduler hands files to workers.
type ScheduleStrategy string

const (
	// ScheduleStride statically assigns indices i, i+N, i+2N, ... to worker i.
	ScheduleStride ScheduleStrategy = "stride"
	// ScheduleQueue lets workers pull the next file from a shared queue.
	ScheduleQueue ScheduleStrategy = "queue"
)

const (
	// DefaultCompiler is the compiler driver used for preprocessing, compiling and linking.
	DefaultCompiler = "clang++"

	// DefaultJobTimeout bounds a single external process invocation.
	DefaultJobTimeout = 10 * time.Minute

	// LinkerMold is the preferred fast link backend.
	LinkerMold = "mold"

	// LinkerDefault is the fallback link backend.
	LinkerDefault = "ld"
)

// Environment variables recognized by the configuration loader.
const (
	EnvDebug    = "DMC_DEBUG"
	EnvSThread  = "DMC_STHREAD"
	EnvDev      = "DMC_DEV"
	EnvLinker   = "DMC_LINKER"
	EnvJobs     = "DMC_JOBS"
	EnvCompiler = "DMC_CC"
	EnvTimeout  = "DMC_TIMEOUT"
	EnvSchedule = "DMC_SCHEDULE"
)

// BuildConfiguration is constructed once at startup and passed to every component.
// It is read-only for the duration of a run.
type BuildConfiguration struct {
	// Root is the workspace root all layout directories are relative to.
	Root string
	// Debug enables step-by-step tracing.
	Debug bool
	// SingleThread forces one compile worker.
	SingleThread bool
	// Dev enables -O2 when compiling and -O2 -flto when linking.
	Dev bool
	// LinkerOverride forces a link backend instead of auto-detection.
	LinkerOverride string
	// Jobs is the requested worker count; 0 means hardware parallelism.
	Jobs int
	// Compiler is the compiler driver executable.
	Compiler string
	// ObjExt is the extension of objects in the store.
	ObjExt string
	// OutputName is the file name of the executable inside the bin directory.
	OutputName string
	// JobTimeout bounds every external process; 0 disables the bound.
	JobTimeout time.Duration
	// Schedule selects the scheduler partitioning strategy.
	Schedule ScheduleStrategy
}

// DefaultBuildConfiguration returns the configuration used when nothing is overridden.
func DefaultBuildConfiguration(root string) BuildConfiguration {
	return BuildConfiguration{
		Root:       root,
		Compiler:   DefaultCompiler,
		ObjExt:     DefaultObjExt,
		OutputName: DefaultOutputName,
		JobTimeout: DefaultJobTimeout,
		Schedule:   ScheduleStride,
	}
}

// Workers returns the effective compile worker count before clamping to the file count.
// Single-thread mode forces one worker; a non-positive job count means hardware parallelism.
func (c *BuildConfiguration) Workers() int {
	switch {
	case c.SingleThread:
		return 1
	case c.Jobs > 0:
		return c.Jobs
	default:
		return runtime.NumCPU()
	}
}

// SrcDir returns the source root.
func (c *BuildConfiguration) SrcDir() string {
	return filepath.Join(c.Root, SrcDirName)
}

// IncludeDir returns the include search path.
func (c *BuildConfiguration) IncludeDir() string {
	return filepath.Join(c.Root, IncludeDirName)
}

// LibDir returns the library search path.
func (c *BuildConfiguration) LibDir() string {
	return filepath.Join(c.Root, LibDirName)
}

// ObjCacheDir returns the object store directory.
func (c *BuildConfiguration) ObjCacheDir() string {
	return filepath.Join(c.Root, ObjCacheDirName)
}

// OutputPath returns the path of the linked executable.
func (c *BuildConfiguration) OutputPath() string {
	return filepath.Join(c.Root, BinDirName, c.OutputName)
}
