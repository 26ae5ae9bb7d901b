package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/dmc/internal/core/domain"
)

func TestRun(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name         string
		args         func(root string) []string
		expectedExit int
	}{
		{
			name:         "version",
			args:         func(string) []string { return []string{"version"} },
			expectedExit: 0,
		},
		{
			name:         "init",
			args:         func(root string) []string { return []string{"init", "-C", root} },
			expectedExit: 0,
		},
		{
			name:         "build without sources",
			args:         func(root string) []string { return []string{"build", "-C", root} },
			expectedExit: 1,
		},
		{
			name:         "unknown command",
			args:         func(string) []string { return []string{"deploy"} },
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			assert.Equal(t, tt.expectedExit, run(tt.args(root)))
		})
	}
}

func TestRun_InitCreatesWorkspace(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, 0, run([]string{"init", "--root", root}))
	for _, dir := range domain.WorkspaceDirs() {
		assert.DirExists(t, filepath.Join(root, dir))
	}
}
