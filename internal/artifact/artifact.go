package artifact

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// Key identifies an artifact. Filenames are unique within a mode.
type Key struct {
	Mode     Mode   `json:"mode"`
	Filename string `json:"filename"`
}

// String returns the repository-relative path "<mode-dir>/<filename>".
func (k Key) String() string {
	return path.Join(k.Mode.Dir(), k.Filename)
}

// Less orders keys by mode, then filename.
func (k Key) Less(other Key) bool {
	if k.Mode != other.Mode {
		return k.Mode < other.Mode
	}
	return k.Filename < other.Filename
}

// Artifact is a single installable content unit. Content is not held here;
// Locator is enough to fetch it on demand.
type Artifact struct {
	Mode        Mode   `json:"mode"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Locator     string `json:"-"`
}

// Key returns the artifact's identity.
func (a Artifact) Key() Key {
	return Key{Mode: a.Mode, Filename: a.Filename}
}

// LocalPath returns root/<mode-dir>/<filename>.
func (a Artifact) LocalPath(root string) string {
	return filepath.Join(root, a.Mode.Dir(), a.Filename)
}

// Collection is a named, tagged grouping of artifacts.
type Collection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Items       []Key    `json:"items"`
}

// ValidateFilename rejects names that are empty or could escape the mode
// directory: path separators, "." or "..", absolute paths, and volume names.
func ValidateFilename(filename string) error {
	switch {
	case strings.TrimSpace(filename) == "":
		return errors.InvalidArgumentf("filename is required")
	case filename == "." || filename == "..":
		return errors.InvalidArgumentf("filename %q is not a file name", filename)
	case strings.ContainsAny(filename, `/\`):
		return errors.InvalidArgumentf("filename %q must not contain path separators", filename)
	case filepath.IsAbs(filename) || filepath.VolumeName(filename) != "":
		return errors.InvalidArgumentf("filename %q must be relative", filename)
	case strings.ContainsRune(filename, 0):
		return errors.InvalidArgumentf("filename %q contains a NUL byte", filename)
	}
	return nil
}

// ParseItemPath splits a collection item path such as
// "instructions/foo.instructions.md" into its key. kind, when non-empty,
// takes precedence over the directory for determining the mode.
func ParseItemPath(itemPath, kind string) (Key, error) {
	dir, file := path.Split(strings.TrimPrefix(path.Clean(itemPath), "/"))
	dir = strings.TrimSuffix(dir, "/")

	var (
		mode Mode
		err  error
	)
	if kind != "" {
		mode, err = ParseMode(kind)
	} else {
		mode, err = ParseMode(path.Base(dir))
	}
	if err != nil {
		return Key{}, err
	}
	if err := ValidateFilename(file); err != nil {
		return Key{}, err
	}
	return Key{Mode: mode, Filename: file}, nil
}
