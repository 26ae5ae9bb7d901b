// Package metrics records build metrics in a Prometheus registry.
package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "dmc"

var _ ports.Metrics = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements ports.Metrics using Prometheus collectors.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	cacheLookups  *prom.CounterVec
	compiles      *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them in reg.
// A nil reg creates a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "object_cache_lookups_total",
			Help:      "Object cache lookups by result",
		}, []string{"result"}),
		compiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "compiles_total",
			Help:      "Compiler invocations by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.cacheLookups, pr.compiles)
	return pr
}

// Registry returns the registry the collectors are registered in.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// ObserveStageDuration records how long a pipeline stage took.
func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncCacheLookup counts one object cache lookup.
func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

// IncCompile counts one compiler invocation.
func (p *PrometheusRecorder) IncCompile(success bool) {
	p.compiles.WithLabelValues(result(success)).Inc()
}

// ObserveBuild records the duration and outcome of a whole build.
func (p *PrometheusRecorder) ObserveBuild(d time.Duration, success bool) {
	p.buildDuration.Observe(d.Seconds())
	p.buildOutcome.WithLabelValues(result(success)).Inc()
}

// WriteTextfile writes the current values to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
