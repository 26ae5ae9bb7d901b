package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/metrics"
	"go.trai.ch/dmc/internal/core/domain"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := metrics.NewPrometheusRecorder(reg)

	pr.ObserveStageDuration("fingerprint", 150*time.Millisecond)
	pr.IncCacheLookup(true)
	pr.IncCacheLookup(true)
	pr.IncCacheLookup(false)
	pr.IncCompile(true)
	pr.IncCompile(false)
	pr.ObserveBuild(500*time.Millisecond, false)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	n, err := testutil.GatherAndCount(reg, "dmc_object_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "hit and miss series")

	n, err = testutil.GatherAndCount(reg, "dmc_build_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)
	pr.IncCompile(true)
	pr.ObserveBuild(time.Second, true)

	path := filepath.Join(t.TempDir(), "dmc.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dmc_compiles_total{result="success"} 1`)
	assert.Contains(t, string(data), `dmc_build_outcomes_total{outcome="success"} 1`)
}

func TestPrometheusRecorder_WriteTextfile_BadPath(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)

	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "dmc.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMetricsWriteFailed.Error())
}
