// Package reconcile reports which artifacts are already present in a local
// workspace.
package reconcile

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// DefaultRoot is the conventional workspace root for installed artifacts.
const DefaultRoot = ".github"

// Reconciler probes <root>/<mode-dir>/<filename> on a filesystem. It never
// writes and never caches; local state may change between calls.
type Reconciler struct {
	fs          afero.Fs
	defaultRoot string
}

// New returns a Reconciler over fsys. An empty defaultRoot means DefaultRoot.
func New(fsys afero.Fs, defaultRoot string) *Reconciler {
	if defaultRoot == "" {
		defaultRoot = DefaultRoot
	}
	return &Reconciler{fs: fsys, defaultRoot: defaultRoot}
}

// Root returns root, or the default root when root is empty.
func (r *Reconciler) Root(root string) string {
	if root == "" {
		return r.defaultRoot
	}
	return root
}

// Path returns the local destination of key under root.
func (r *Reconciler) Path(root string, key artifact.Key) (string, error) {
	if !key.Mode.Valid() {
		return "", errors.InvalidArgumentf("cannot resolve a local path for mode %q", key.Mode)
	}
	if err := artifact.ValidateFilename(key.Filename); err != nil {
		return "", err
	}
	a := artifact.Artifact{Mode: key.Mode, Filename: key.Filename}
	return a.LocalPath(r.Root(root)), nil
}

// Exists reports whether key is present under root.
func (r *Reconciler) Exists(root string, key artifact.Key) (bool, error) {
	p, err := r.Path(root, key)
	if err != nil {
		return false, err
	}
	_, err = r.fs.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, "checking %s", p)
	}
}

// CheckExisting reports, per candidate, whether it is present under root.
func (r *Reconciler) CheckExisting(root string, candidates []artifact.Artifact) (map[artifact.Key]bool, error) {
	present := make(map[artifact.Key]bool, len(candidates))
	for _, a := range candidates {
		ok, err := r.Exists(root, a.Key())
		if err != nil {
			return nil, err
		}
		present[a.Key()] = ok
	}
	return present, nil
}
