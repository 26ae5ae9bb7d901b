// Package workspace bootstraps the standard directory layout of a project.
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

// StubScript is the content written to a missing stage script.
const StubScript = "#!/usr/bin/env sh\n"

var _ ports.Workspace = (*Bootstrapper)(nil)

// Bootstrapper implements ports.Workspace.
type Bootstrapper struct {
	logger ports.Logger
}

// NewBootstrapper creates a new Bootstrapper.
func NewBootstrapper(logger ports.Logger) *Bootstrapper {
	return &Bootstrapper{logger: logger}
}

// Ensure creates the standard directories and empty stage scripts below root.
// Existing directories and scripts are left untouched.
func (b *Bootstrapper) Ensure(root string) error {
	for _, dir := range domain.WorkspaceDirs() {
		path := filepath.Join(root, dir)
		if err := os.MkdirAll(path, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceSetupFailed.Error()), "dir", path)
		}
	}

	for _, stage := range domain.Stages() {
		if err := b.ensureScript(domain.ScriptPath(root, stage)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) ensureScript(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceSetupFailed.Error()), "script", path)
	}

	if err := os.WriteFile(path, []byte(StubScript), domain.ScriptPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceSetupFailed.Error()), "script", path)
	}
	// WriteFile is subject to the umask; stage scripts must stay executable.
	if err := os.Chmod(path, domain.ScriptPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceSetupFailed.Error()), "script", path)
	}

	b.logger.Debug("created stage script", "path", path)
	return nil
}
