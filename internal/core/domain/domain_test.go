package domain_test

import (
	"crypto/sha256"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/core/domain"
)

func TestFingerprint(t *testing.T) {
	sum := sha256.Sum256([]byte("int main() { return 0; }"))
	fp := domain.NewFingerprint(sum[:])

	assert.True(t, fp.Valid())
	assert.Len(t, fp.String(), 2*domain.FingerprintSize)
	assert.Equal(t, fp.String()[:12], fp.Short())

	assert.False(t, domain.Fingerprint("").Valid())
	assert.False(t, domain.Fingerprint(strings.ToUpper(fp.String())).Valid())
	assert.False(t, domain.Fingerprint("../../etc/passwd").Valid())
	assert.Equal(t, "abc", domain.Fingerprint("abc").Short())
}

func TestUniqueFingerprints(t *testing.T) {
	items := []domain.FingerprintedSource{
		{Source: domain.SourceFile{Path: "src/a.cc"}, Fingerprint: "bb"},
		{Source: domain.SourceFile{Path: "src/b.cc"}, Fingerprint: "aa"},
		{Source: domain.SourceFile{Path: "src/c.cc"}, Fingerprint: "bb"},
	}
	assert.Equal(t, []domain.Fingerprint{"bb", "aa"}, domain.UniqueFingerprints(items))
	assert.Empty(t, domain.UniqueFingerprints(nil))
}

func TestParseStage(t *testing.T) {
	for _, s := range domain.Stages() {
		got, err := domain.ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := domain.ParseStage("deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnknownStage.Error())
}

func TestBuildConfiguration_Workers(t *testing.T) {
	cfg := domain.DefaultBuildConfiguration("/work")
	assert.Equal(t, runtime.NumCPU(), cfg.Workers())

	cfg.Jobs = 3
	assert.Equal(t, 3, cfg.Workers())

	cfg.SingleThread = true
	assert.Equal(t, 1, cfg.Workers())
}

func TestDefaultBuildConfiguration(t *testing.T) {
	cfg := domain.DefaultBuildConfiguration("/work")
	assert.Equal(t, domain.DefaultCompiler, cfg.Compiler)
	assert.Equal(t, domain.ScheduleStride, cfg.Schedule)
	assert.Equal(t, domain.DefaultJobTimeout, cfg.JobTimeout)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Dev)
	assert.Empty(t, cfg.LinkerOverride)
}

func TestCommand(t *testing.T) {
	cmd := domain.Command{Name: "clang++", Args: []string{"-c", "a.cc"}}
	assert.Equal(t, []string{"clang++", "-c", "a.cc"}, cmd.Argv())
	assert.Equal(t, "clang++ -c a.cc", cmd.String())
	assert.Equal(t, []string{"ld"}, domain.Command{Name: "ld"}.Argv())
}

func TestProcessResult(t *testing.T) {
	ok := domain.ProcessResult{Stderr: []byte("  warning\n")}
	assert.True(t, ok.Succeeded())
	assert.Equal(t, "warning", ok.StderrTail())

	long := domain.ProcessResult{ExitCode: 1, Stderr: []byte(strings.Repeat("x", 5000) + "tail")}
	assert.False(t, long.Succeeded())
	tail := long.StderrTail()
	assert.Len(t, tail, 4096)
	assert.True(t, strings.HasSuffix(tail, "tail"))
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.JobPending.IsTerminal())
	assert.False(t, domain.JobRunning.IsTerminal())
	assert.True(t, domain.JobCompiled.IsTerminal())
	assert.True(t, domain.JobCached.IsTerminal())
	assert.True(t, domain.JobFailed.IsTerminal())
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
}

func TestBuildReport_CacheMisses(t *testing.T) {
	r := &domain.BuildReport{
		Sources:   make([]domain.FingerprintedSource, 5),
		CacheHits: 2,
	}
	assert.Equal(t, 3, r.CacheMisses())
}
