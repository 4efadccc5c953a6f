// Package install materializes remote artifacts in a local workspace.
package install

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
	"github.com/ajilantony/copilot-agentops-mcp/internal/reconcile"
	"github.com/ajilantony/copilot-agentops-mcp/pkg/fileutil"
)

// FilePerm and DirPerm are applied to installed files and created directories.
const (
	FilePerm os.FileMode = 0o644
	DirPerm  os.FileMode = 0o755
)

// Source resolves artifacts and their content. *metadata.Cache satisfies it.
type Source interface {
	EnsureIndex(ctx context.Context, force bool) (*metadata.Index, error)
	Content(ctx context.Context, a artifact.Artifact) ([]byte, error)
}

// Locker serializes work on one destination path. *lock.Locker satisfies it.
type Locker interface {
	Acquire(ctx context.Context, dest string) (release func(), err error)
}

// Options modifies a single Install call.
type Options struct {
	// Overwrite replaces an existing destination file. It must be asked for
	// explicitly; without it an occupied destination fails with AlreadyExists.
	Overwrite bool
}

// Manager installs artifacts. It holds no state between calls.
type Manager struct {
	source     Source
	fs         afero.Fs
	reconciler *reconcile.Reconciler
	locker     Locker
	logger     *slog.Logger
}

// NewManager creates a Manager writing through fsys. locker may be nil, in
// which case concurrent installs of one destination are not serialized.
func NewManager(source Source, fsys afero.Fs, reconciler *reconcile.Reconciler, locker Locker, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Manager{
		source:     source,
		fs:         fsys,
		reconciler: reconciler,
		locker:     locker,
		logger:     logger,
	}
}

// Install writes the artifact (mode, filename) under root and returns
// root/<mode-dir>/<filename>. An empty root means the reconciler's default.
//
// It fails with InvalidMode for Undefined, InvalidArgument for unsafe
// filenames, NotFound when the pair is not in the index, AlreadyExists when
// the destination is occupied and opts.Overwrite is false, FetchError when
// content cannot be retrieved, and WriteError for local I/O failures. A
// failed install never leaves a partial file at the destination.
func (m *Manager) Install(ctx context.Context, mode artifact.Mode, filename, root string, opts Options) (string, error) {
	// 1. Validate
	if !mode.Valid() {
		return "", errors.WithDetail(
			errors.InvalidModef("mode %q cannot be installed", mode),
			"use one of: chatmodes, instructions, prompts, agents",
		)
	}
	if err := artifact.ValidateFilename(filename); err != nil {
		return "", err
	}
	key := artifact.Key{Mode: mode, Filename: filename}
	root = m.reconciler.Root(root)

	// 2. Resolve
	idx, err := m.source.EnsureIndex(ctx, false)
	if err != nil {
		return "", err
	}
	a, ok := idx.Lookup(key)
	if !ok {
		return "", errors.WithDetail(
			errors.NotFoundf("%s is not in the artifact index", key),
			"search first, or call refresh_index if the artifact was published recently",
		)
	}

	dest, err := m.reconciler.Path(root, key)
	if err != nil {
		return "", err
	}
	logger := m.logger.With("artifact", key.String(), "dest", dest)

	if m.locker != nil {
		release, err := m.locker.Acquire(ctx, dest)
		if err != nil {
			return "", errors.Write(err, "locking destination")
		}
		defer release()
	}

	// 3. Conflict check
	exists, err := m.reconciler.Exists(root, key)
	if err != nil {
		return "", errors.Write(err, "checking destination")
	}
	if exists && !opts.Overwrite {
		return "", errors.WithDetail(
			errors.AlreadyExistsf("%s already exists", dest),
			"remove the file or install again with overwrite enabled",
		)
	}

	// 4. Materialize
	content, err := m.source.Content(ctx, a)
	if err != nil {
		return "", err
	}
	if err := m.fs.MkdirAll(filepath.Dir(dest), DirPerm); err != nil {
		return "", errors.Write(err, "creating "+filepath.Dir(dest))
	}
	if err := fileutil.AtomicWriteFile(m.fs, dest, content, FilePerm); err != nil {
		return "", errors.Write(err, "writing "+dest)
	}

	logger.Info("artifact installed", "bytes", len(content), "replaced", exists)
	return dest, nil
}
