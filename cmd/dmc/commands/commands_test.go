package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/cmd/dmc/commands"
	"go.trai.ch/dmc/internal/app"
	"go.trai.ch/dmc/internal/build"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader    *mocks.MockConfigLoader
	logger    *mocks.MockLogger
	workspace *mocks.MockWorkspace
	metrics   *mocks.MockMetrics
}

func newCLI(t *testing.T) (*commands.CLI, *testMocks, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		workspace: mocks.NewMockWorkspace(ctrl),
		metrics:   mocks.NewMockMetrics(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	a := app.New(
		m.loader,
		mocks.NewMockExecutor(ctrl),
		m.logger,
		m.workspace,
		mocks.NewMockSourceDiscoverer(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockTelemetry(ctrl),
		m.metrics,
		mocks.NewMockWatcher(ctrl),
	)

	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out)
	return cli, m, &out
}

func TestVersion(t *testing.T) {
	cli, _, out := newCLI(t)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "dmc version "+build.Version)
}

func TestRoot_Help(t *testing.T) {
	cli, _, out := newCLI(t)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	for _, sub := range []string{"build", "init", "hash", "watch", "version"} {
		assert.Contains(t, out.String(), sub)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"build", "target"})

	assert.Error(t, cli.Execute(context.Background()))
}

func TestInit(t *testing.T) {
	cli, m, _ := newCLI(t)
	root := t.TempDir()

	m.workspace.EXPECT().Ensure(root).Return(nil)
	m.logger.EXPECT().Info("workspace ready", "root", root)

	cli.SetArgs([]string{"init", "-C", root})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_ConfigError(t *testing.T) {
	cli, m, _ := newCLI(t)

	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigParseFailed)
	m.metrics.EXPECT().ObserveBuild(gomock.Any(), false)

	cli.SetArgs([]string{"build"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestBuild_DefaultCommand(t *testing.T) {
	cli, m, _ := newCLI(t)

	m.loader.EXPECT().Load("/work").Return(nil, domain.ErrConfigReadFailed)
	m.metrics.EXPECT().ObserveBuild(gomock.Any(), false)

	cli.SetArgs([]string{"--root", "/work"})
	assert.ErrorIs(t, cli.Execute(context.Background()), domain.ErrBuildExecutionFailed)
}

func TestBuild_FlagOverridesAreValidated(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative jobs", args: []string{"build", "--jobs", "-1"}},
		{name: "unknown schedule", args: []string{"build", "--schedule", "random"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, m, _ := newCLI(t)

			cfg := domain.DefaultBuildConfiguration("/work")
			m.loader.EXPECT().Load(".").Return(&cfg, nil)
			m.metrics.EXPECT().ObserveBuild(gomock.Any(), false)

			cli.SetArgs(tt.args)
			err := cli.Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrInvalidConfig.Error())
		})
	}
}

func TestBuild_MetricsFileWrittenOnFailure(t *testing.T) {
	cli, m, _ := newCLI(t)

	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigReadFailed)
	m.metrics.EXPECT().ObserveBuild(gomock.Any(), false)
	m.metrics.EXPECT().WriteTextfile("/tmp/dmc.prom").Return(nil)

	cli.SetArgs([]string{"build", "--metrics-file", "/tmp/dmc.prom"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestHash_ConfigError(t *testing.T) {
	cli, m, _ := newCLI(t)

	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigReadFailed)

	cli.SetArgs([]string{"hash"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}
