package install

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/lock"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
	"github.com/ajilantony/copilot-agentops-mcp/internal/reconcile"
)

const dotnetFile = "dotnet-best-practices.instruction.md"

type fakeSource struct {
	idx        *metadata.Index
	indexErr   error
	content    map[string][]byte
	contentErr error
	fetches    atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		idx: metadata.NewIndex([]artifact.Artifact{
			{Mode: artifact.Instructions, Filename: dotnetFile, Title: "DotNet Best Practices"},
			{Mode: artifact.Prompts, Filename: "review.prompt.md", Title: "Review"},
		}, nil),
		content: map[string][]byte{
			"instructions/" + dotnetFile: []byte("# DotNet\n"),
			"prompts/review.prompt.md":   []byte("# Review\n"),
		},
	}
}

func (s *fakeSource) EnsureIndex(context.Context, bool) (*metadata.Index, error) {
	if s.indexErr != nil {
		return nil, s.indexErr
	}
	return s.idx, nil
}

func (s *fakeSource) Content(_ context.Context, a artifact.Artifact) ([]byte, error) {
	s.fetches.Add(1)
	if s.contentErr != nil {
		return nil, s.contentErr
	}
	return s.content[a.Locator], nil
}

func newTestManager(t *testing.T, src Source, fsys afero.Fs) *Manager {
	t.Helper()
	return NewManager(src, fsys, reconcile.New(fsys, ""), nil, logging.ForTest(t))
}

func TestInstall_ThenAlreadyExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m := newTestManager(t, newFakeSource(), fsys)
	ctx := context.Background()

	got, err := m.Install(ctx, artifact.Instructions, dotnetFile, ".github", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".github", "instructions", dotnetFile), got)

	data, err := afero.ReadFile(fsys, got)
	require.NoError(t, err)
	assert.Equal(t, "# DotNet\n", string(data))

	present, err := reconcile.New(fsys, "").CheckExisting(".github", []artifact.Artifact{{Mode: artifact.Instructions, Filename: dotnetFile}})
	require.NoError(t, err)
	assert.True(t, present[artifact.Key{Mode: artifact.Instructions, Filename: dotnetFile}])

	_, err = m.Install(ctx, artifact.Instructions, dotnetFile, ".github", Options{})
	assert.Equal(t, errors.KindAlreadyExists, errors.KindOf(err))
}

func TestInstall_ExistingFileUntouched(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dest := filepath.Join(".github", "instructions", dotnetFile)
	require.NoError(t, afero.WriteFile(fsys, dest, []byte("local edits"), 0o600))

	src := newFakeSource()
	m := newTestManager(t, src, fsys)

	_, err := m.Install(context.Background(), artifact.Instructions, dotnetFile, "", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	data, err := afero.ReadFile(fsys, dest)
	require.NoError(t, err)
	assert.Equal(t, "local edits", string(data))
	assert.EqualValues(t, 0, src.fetches.Load(), "content is not fetched for a refused install")
}

func TestInstall_Overwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dest := filepath.Join(".github", "prompts", "review.prompt.md")
	require.NoError(t, afero.WriteFile(fsys, dest, []byte("old"), 0o644))

	m := newTestManager(t, newFakeSource(), fsys)
	got, err := m.Install(context.Background(), artifact.Prompts, "review.prompt.md", "", Options{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	data, err := afero.ReadFile(fsys, dest)
	require.NoError(t, err)
	assert.Equal(t, "# Review\n", string(data))
}

func TestInstall_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mode     artifact.Mode
		filename string
		setup    func(*fakeSource, afero.Fs)
		want     errors.Kind
	}{
		{
			name:     "undefined mode",
			mode:     artifact.Undefined,
			filename: dotnetFile,
			want:     errors.KindInvalidMode,
		},
		{
			name:     "empty filename",
			mode:     artifact.Instructions,
			filename: "",
			want:     errors.KindInvalidArgument,
		},
		{
			name:     "traversal",
			mode:     artifact.Instructions,
			filename: "../../etc/passwd",
			want:     errors.KindInvalidArgument,
		},
		{
			name:     "absolute path",
			mode:     artifact.Instructions,
			filename: "/tmp/x.instructions.md",
			want:     errors.KindInvalidArgument,
		},
		{
			name:     "not in index",
			mode:     artifact.Agents,
			filename: "ghost.agent.md",
			want:     errors.KindNotFound,
		},
		{
			name:     "not in index although present locally",
			mode:     artifact.Agents,
			filename: "local.agent.md",
			setup: func(_ *fakeSource, fsys afero.Fs) {
				_ = afero.WriteFile(fsys, ".github/agents/local.agent.md", []byte("x"), 0o644)
			},
			want: errors.KindNotFound,
		},
		{
			name:     "wrong mode for known filename",
			mode:     artifact.Prompts,
			filename: dotnetFile,
			want:     errors.KindNotFound,
		},
		{
			name:     "index unavailable",
			mode:     artifact.Instructions,
			filename: dotnetFile,
			setup: func(s *fakeSource, _ afero.Fs) {
				s.indexErr = errors.Fetch(errors.New("timeout"), "fetching remote listing")
			},
			want: errors.KindFetch,
		},
		{
			name:     "content unavailable",
			mode:     artifact.Instructions,
			filename: dotnetFile,
			setup: func(s *fakeSource, _ afero.Fs) {
				s.contentErr = errors.Fetch(errors.New("404"), "fetching content")
			},
			want: errors.KindFetch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			fsys := afero.NewMemMapFs()
			if tt.setup != nil {
				tt.setup(src, fsys)
			}
			m := newTestManager(t, src, fsys)

			_, err := m.Install(context.Background(), tt.mode, tt.filename, "", Options{})
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.KindOf(err), "error: %v", err)

			exists, _ := afero.Exists(fsys, filepath.Join(".github", "instructions", dotnetFile))
			assert.False(t, exists, "no file may be written on failure")
		})
	}
}

func TestInstall_WriteError(t *testing.T) {
	base := afero.NewMemMapFs()
	m := newTestManager(t, newFakeSource(), afero.NewReadOnlyFs(base))

	_, err := m.Install(context.Background(), artifact.Instructions, dotnetFile, "", Options{})
	require.Error(t, err)
	assert.Equal(t, errors.KindWrite, errors.KindOf(err))

	exists, _ := afero.Exists(base, filepath.Join(".github", "instructions", dotnetFile))
	assert.False(t, exists)
}

func TestInstall_ConcurrentSameDestination(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".github")
	fsys := afero.NewOsFs()
	m := NewManager(newFakeSource(), fsys, reconcile.New(fsys, ""), lock.New(t.TempDir()), logging.ForTest(t))

	const workers = 6
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Install(context.Background(), artifact.Instructions, dotnetFile, root, Options{})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, errors.ErrAlreadyExists):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, workers-1, conflicts.Load())
}
