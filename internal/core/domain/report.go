package domain

import "time"

// BuildReport summarizes one pipeline run.
type BuildReport struct {
	RunID          string
	Sources        []FingerprintedSource
	CacheHits      int
	Compiled       int
	LinkSet        LinkSet
	Linker         string
	Output         string
	OutputDigest   string
	StageDurations map[string]time.Duration
	Duration       time.Duration
}

// CacheMisses returns the number of files whose object had to be produced in this run.
func (r *BuildReport) CacheMisses() int {
	return len(r.Sources) - r.CacheHits
}
