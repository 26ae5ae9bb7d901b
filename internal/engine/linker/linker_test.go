package linker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/cas"
	"go.trai.ch/dmc/internal/adapters/telemetry"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports/mocks"
	"go.trai.ch/dmc/internal/engine/linker"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	fpA = domain.Fingerprint("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	fpB = domain.Fingerprint("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func sources() []domain.FingerprintedSource {
	return []domain.FingerprintedSource{
		{Source: domain.SourceFile{Path: "src/a.cpp"}, Fingerprint: fpA},
		{Source: domain.SourceFile{Path: "src/b.cpp"}, Fingerprint: fpB},
		{Source: domain.SourceFile{Path: "src/c.cpp"}, Fingerprint: fpA},
	}
}

func TestBuildLinkSet(t *testing.T) {
	store, err := cas.NewStore(t.TempDir(), "o")
	require.NoError(t, err)

	set := linker.BuildLinkSet(store, sources())

	require.Len(t, set, 3)
	assert.Equal(t, store.Path(fpA), set[0])
	assert.Equal(t, store.Path(fpB), set[1])
	assert.Equal(t, set[0], set[2], "identical content shares one object")
}

func TestSelectLinker(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/mold", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }
	executable := func(p string) bool { return p == linker.MoldFallbackPath }
	never := func(string) bool { return false }

	tests := []struct {
		name     string
		override string
		lookPath func(string) (string, error)
		isExec   func(string) bool
		want     string
	}{
		{name: "override wins", override: "lld", lookPath: found, isExec: executable, want: "lld"},
		{name: "mold on path", lookPath: found, isExec: never, want: domain.LinkerMold},
		{name: "mold at fallback path", lookPath: missing, isExec: executable, want: domain.LinkerMold},
		{name: "default", lookPath: missing, isExec: never, want: domain.LinkerDefault},
		{name: "nothing found", want: domain.LinkerDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linker.SelectLinker(tt.override, tt.lookPath, tt.isExec))
		})
	}
}

func newStage(t *testing.T, ctrl *gomock.Controller) (*linker.Stage, *mocks.MockLinker, *mocks.MockHasher, *cas.Store) {
	t.Helper()
	store, err := cas.NewStore(t.TempDir(), "o")
	require.NoError(t, err)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	link := mocks.NewMockLinker(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	return linker.NewStage(store, link, hasher, telemetry.NewNoOp(), log), link, hasher, store
}

func TestStage_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	stage, link, hasher, store := newStage(t, ctrl)

	output := filepath.Join(t.TempDir(), "bin", "main")

	link.EXPECT().Link(gomock.Any(), domain.LinkRequest{
		Backend:     "ld",
		Objects:     domain.LinkSet{store.Path(fpA), store.Path(fpB), store.Path(fpA)},
		Flags:       "-DX ",
		LinkerFlags: "-lm ",
		Output:      output,
	}).DoAndReturn(func(_ context.Context, req domain.LinkRequest) error {
		return os.WriteFile(req.Output, []byte("exe"), 0o600)
	})
	hasher.EXPECT().ComputeFileHash(output).Return(uint64(0xabc), nil)

	res, err := stage.Run(t.Context(), linker.Request{
		Items:       sources(),
		Backend:     "ld",
		Flags:       "-DX ",
		LinkerFlags: "-lm ",
		Output:      output,
	})
	require.NoError(t, err)

	assert.Equal(t, "0000000000000abc", res.Digest)
	assert.Equal(t, "ld", res.Backend)
	assert.Len(t, res.LinkSet, 3)
	assert.DirExists(t, filepath.Dir(output))
}

func TestStage_Run_NoSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	stage, _, _, _ := newStage(t, ctrl)

	_, err := stage.Run(t.Context(), linker.Request{Backend: "ld", Output: filepath.Join(t.TempDir(), "main")})
	assert.ErrorIs(t, err, domain.ErrNoSources)
}

func TestStage_Run_LinkFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	stage, link, _, _ := newStage(t, ctrl)

	link.EXPECT().Link(gomock.Any(), gomock.Any()).
		Return(zerr.With(domain.ErrLinkFailed, "stderr", "undefined reference to main"))

	_, err := stage.Run(t.Context(), linker.Request{
		Items:   sources(),
		Backend: "ld",
		Output:  filepath.Join(t.TempDir(), "main"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrLinkFailed.Error())
}

func TestStage_Run_DigestFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	stage, link, hasher, _ := newStage(t, ctrl)

	link.EXPECT().Link(gomock.Any(), gomock.Any()).Return(nil)
	hasher.EXPECT().ComputeFileHash(gomock.Any()).Return(uint64(0), domain.ErrFileOpenFailed)

	_, err := stage.Run(t.Context(), linker.Request{
		Items:   sources(),
		Backend: "ld",
		Output:  filepath.Join(t.TempDir(), "main"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFileOpenFailed.Error())
}
