package workspace_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/workspace"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBootstrapper_Ensure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("created stage script", "path", gomock.Any()).Times(len(domain.Stages()))

	root := t.TempDir()
	b := workspace.NewBootstrapper(log)
	require.NoError(t, b.Ensure(root))

	for _, dir := range domain.WorkspaceDirs() {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	for _, stage := range domain.Stages() {
		path := domain.ScriptPath(root, stage)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, workspace.StubScript, string(data))

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(domain.ScriptPerm), info.Mode().Perm())
		}
	}
}

func TestBootstrapper_Ensure_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	root := t.TempDir()
	b := workspace.NewBootstrapper(log)
	require.NoError(t, b.Ensure(root))

	custom := "#!/bin/sh\necho -DCUSTOM\n"
	script := domain.ScriptPath(root, domain.StagePreprocessor)
	require.NoError(t, os.WriteFile(script, []byte(custom), domain.ScriptPerm))
	marker := filepath.Join(root, domain.SrcDirName, "main.cc")
	require.NoError(t, os.WriteFile(marker, []byte("int main() {}"), domain.FilePerm))

	require.NoError(t, b.Ensure(root))

	data, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data), "existing scripts are never overwritten")
	_, err = os.Stat(marker)
	require.NoError(t, err)
}

func TestBootstrapper_Ensure_RootIsFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, nil, domain.FilePerm))

	err := workspace.NewBootstrapper(mocks.NewMockLogger(ctrl)).Ensure(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrWorkspaceSetupFailed.Error())
}
