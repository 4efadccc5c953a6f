// Package fileutil provides file system utilities including atomic writes.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// tempPattern names in-flight files so a crashed write is recognizable.
const tempPattern = ".agentops-atomic-*.tmp"

// AtomicWriteFile writes data to path on fsys using a temp file + rename.
// The temp file is created in the destination directory, synced, chmodded,
// closed, and renamed into place. On any failure it is removed, so readers
// see either the previous file or the complete new one.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fsys, dir, tempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}
