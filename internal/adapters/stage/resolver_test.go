package stage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/logger"
	"go.trai.ch/dmc/internal/adapters/shell"
	"go.trai.ch/dmc/internal/adapters/stage"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestResolver_Resolve_JoinsLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, stdout io.Writer) (domain.ProcessResult, error) {
			assert.Equal(t, "sh", cmd.Name)
			assert.Equal(t, []string{"-c", `"$0"`, domain.ScriptPath(root, domain.StagePreprocessor)}, cmd.Args)
			assert.Equal(t, root, cmd.Dir)
			assert.Equal(t, time.Minute, cmd.Timeout)
			_, _ = io.WriteString(stdout, "-DFOO\n-Wall\n")
			return domain.ProcessResult{Command: cmd}, nil
		}).Times(1)

	r := stage.NewResolver(executor, quietLogger(ctrl), root, time.Minute)

	flags, err := r.Resolve(context.Background(), domain.StagePreprocessor)
	require.NoError(t, err)
	assert.Equal(t, "-DFOO -Wall ", flags)

	// Memoized: the script does not run again.
	flags, err = r.Resolve(context.Background(), domain.StagePreprocessor)
	require.NoError(t, err)
	assert.Equal(t, "-DFOO -Wall ", flags)
}

func TestResolver_Resolve_EmptyOutput(t *testing.T) {
	ctrl := gomock.NewController(t)

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, nil)

	r := stage.NewResolver(executor, quietLogger(ctrl), t.TempDir(), 0)

	flags, err := r.Resolve(context.Background(), domain.StageLinker)
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestResolver_Resolve_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{ExitCode: 3, Stderr: []byte("pkg-config: not found\n")}, nil)

	r := stage.NewResolver(executor, quietLogger(ctrl), t.TempDir(), 0)

	_, err := r.Resolve(context.Background(), domain.StagePreprocessor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStageScriptFailed.Error())
}

func TestResolver_Resolve_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	startErr := errors.New("permission denied")

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{ExitCode: -1}, startErr)

	r := stage.NewResolver(executor, quietLogger(ctrl), t.TempDir(), 0)

	_, err := r.Resolve(context.Background(), domain.StagePrebuild)
	require.ErrorIs(t, err, startErr)
	assert.Contains(t, err.Error(), domain.ErrStageScriptFailed.Error())
}

func TestResolver_Resolve_RealScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctrl := gomock.NewController(t)
	log := quietLogger(ctrl)

	root := t.TempDir()
	script := domain.ScriptPath(root, domain.StageLinker)
	require.NoError(t, os.MkdirAll(filepath.Dir(script), domain.DirPerm))
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho -lm\nprintf -- '-lpthread'\n"), domain.ScriptPerm))

	r := stage.NewResolver(shell.NewExecutor(log), log, root, 0)

	flags, err := r.Resolve(context.Background(), domain.StageLinker)
	require.NoError(t, err)
	assert.Equal(t, "-lm -lpthread ", flags)
}

func writeScript(t *testing.T, root string, stage domain.Stage, body string) {
	t.Helper()
	script := domain.ScriptPath(root, stage)
	require.NoError(t, os.MkdirAll(filepath.Dir(script), domain.DirPerm))
	require.NoError(t, os.WriteFile(script, []byte(body), domain.ScriptPerm))
}

func TestResolver_Resolve_ScriptWithoutShebang(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctrl := gomock.NewController(t)
	log := quietLogger(ctrl)

	root := t.TempDir()
	writeScript(t, root, domain.StagePreprocessor, "echo -DNO_SHEBANG\n")

	r := stage.NewResolver(shell.NewExecutor(log), log, root, 0)

	flags, err := r.Resolve(context.Background(), domain.StagePreprocessor)
	require.NoError(t, err)
	assert.Equal(t, "-DNO_SHEBANG ", flags)
}

func TestResolver_Resolve_StderrOnlyInDebug(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Setenv("NO_COLOR", "1")

	root := t.TempDir()
	writeScript(t, root, domain.StagePreprocessor, "#!/bin/sh\necho -DFOO\necho 'pkg-config chatter' >&2\n")

	for _, debug := range []bool{false, true} {
		var console bytes.Buffer
		log := logger.New()
		log.SetOutput(&console)
		log.SetDebug(debug)

		r := stage.NewResolver(shell.NewExecutor(log), log, root, 0)
		flags, err := r.Resolve(context.Background(), domain.StagePreprocessor)
		require.NoError(t, err)
		assert.Equal(t, "-DFOO ", flags)

		if debug {
			assert.Contains(t, console.String(), "pkg-config chatter")
		} else {
			assert.Empty(t, console.String())
		}
	}
}

func TestResolver_Resolve_LongLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	long := bytes.Repeat([]byte("x"), 200*1024)

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Command, stdout io.Writer) (domain.ProcessResult, error) {
			_, _ = stdout.Write(long)
			return domain.ProcessResult{}, nil
		})

	r := stage.NewResolver(executor, quietLogger(ctrl), t.TempDir(), 0)

	flags, err := r.Resolve(context.Background(), domain.StagePreprocessor)
	require.NoError(t, err)
	assert.Equal(t, string(long)+" ", flags)
}
