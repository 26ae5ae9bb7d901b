package domain

// JobStatus represents the lifecycle state of one compile job.
type JobStatus string

const (
	// JobPending indicates the job has not been picked up by a worker yet.
	JobPending JobStatus = "pending"
	// JobRunning indicates a worker is processing the job.
	JobRunning JobStatus = "running"
	// JobCompiled indicates the compiler produced a new object for the job.
	JobCompiled JobStatus = "compiled"
	// JobCached indicates the object already existed in the object store.
	JobCached JobStatus = "cached"
	// JobFailed indicates the compiler failed for the job.
	JobFailed JobStatus = "failed"
)

// IsTerminal reports whether the job has finished (compiled, cached or failed).
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobCompiled, JobCached, JobFailed:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
