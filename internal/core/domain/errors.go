package domain

import "go.trai.ch/zerr"

var (
	// ErrWorkspaceSetupFailed is returned when the standard directories or stage script stubs cannot be created.
	ErrWorkspaceSetupFailed = zerr.New("failed to set up workspace")

	// ErrStageScriptFailed is returned when a stage script cannot be executed or exits non-zero.
	ErrStageScriptFailed = zerr.New("stage script failed")

	// ErrUnknownStage is returned when a stage name does not match any known build stage.
	ErrUnknownStage = zerr.New("unknown build stage")

	// ErrSourceDiscoveryFailed is returned when the source tree cannot be walked.
	ErrSourceDiscoveryFailed = zerr.New("failed to discover source files")

	// ErrNoSources is returned when the source tree contains no files to build.
	ErrNoSources = zerr.New("no source files found")

	// ErrPreprocessFailed is returned when the preprocessor fails for a source file.
	ErrPreprocessFailed = zerr.New("preprocessing failed")

	// ErrFingerprintFailed is returned when the fingerprint pass fails for one or more files.
	ErrFingerprintFailed = zerr.New("failed to fingerprint sources")

	// ErrCompileFailed is returned when the compiler exits non-zero for a cache miss.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the linker exits non-zero.
	ErrLinkFailed = zerr.New("link failed")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrInvalidFlags is returned when a flag string cannot be split into arguments.
	ErrInvalidFlags = zerr.New("invalid flag string")

	// ErrProcessStartFailed is returned when an external process cannot be started.
	ErrProcessStartFailed = zerr.New("failed to start process")

	// ErrProcessTimeout is returned when an external process exceeds its time budget.
	ErrProcessTimeout = zerr.New("process timed out")

	// ErrCacheCreateFailed is returned when the object store directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create object store directory")

	// ErrCacheLookupFailed is returned when the object store cannot be queried.
	ErrCacheLookupFailed = zerr.New("failed to look up object store entry")

	// ErrCacheCommitFailed is returned when a compiled object cannot be moved into the object store.
	ErrCacheCommitFailed = zerr.New("failed to commit object to store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrWatchFailed is returned when the file system watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch workspace")
)
