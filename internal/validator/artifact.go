package validator

import (
	"bytes"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/pkg/frontmatter"
)

// promptModes are the values VS Code accepts for a prompt's "mode" key.
var promptModes = []string{"ask", "edit", "agent"}

// Artifact checks one artifact file of the given mode.
func Artifact(mode artifact.Mode, filename string, content []byte) *Result {
	res := &Result{Files: 1}

	if !mode.Valid() {
		res.AddError("", "unknown artifact mode", mode.String())
		return res
	}
	if err := artifact.ValidateFilename(filename); err != nil {
		res.AddError("", err.Error(), nil)
		return res
	}
	if !mode.HasConventionalSuffix(filename) {
		res.AddWarning("", "filename does not use the "+mode.String()+" suffix convention", filename)
	}

	var m frontmatter.Matter
	body, err := frontmatter.MustParse(bytes.NewReader(content), &m)
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter):
		res.AddWarning("", "no front matter; Copilot will use defaults", nil)
		body = content
	case errors.Is(err, frontmatter.ErrUnterminated):
		res.AddError("", "front matter is not closed with ---", nil)
		return res
	case err != nil:
		res.AddError("", "front matter is not valid YAML", nil)
		return res
	default:
		checkMatter(res, mode, m)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		res.AddWarning("", "body is empty", nil)
	}
	return res
}

func checkMatter(res *Result, mode artifact.Mode, m frontmatter.Matter) {
	if strings.TrimSpace(m.Description) == "" {
		res.AddWarning("description", "is recommended", nil)
	}
	switch mode {
	case artifact.Instructions:
		if strings.TrimSpace(m.ApplyTo) == "" {
			res.AddWarning("applyTo", "is required for the instructions to attach automatically", nil)
		} else {
			for _, glob := range strings.Split(m.ApplyTo, ",") {
				if _, err := path.Match(strings.TrimSpace(glob), ""); err != nil {
					res.AddError("applyTo", "is not a valid glob", glob)
				}
			}
		}
	case artifact.Prompts:
		if m.Mode != "" && !slices.Contains(promptModes, m.Mode) {
			res.AddError("mode", "must be one of ask, edit, agent", m.Mode)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(m.Extra)) {
		res.AddInfo(key, "is not a recognised front matter key", nil)
	}
	for _, tool := range m.Tools {
		if strings.TrimSpace(tool) == "" {
			res.AddError("tools", "contains an empty entry", nil)
			break
		}
	}
}

// Tree checks every Markdown file under <root>/<mode>/ for all modes.
// Missing mode directories are skipped.
func Tree(fsys afero.Fs, root string) (*Result, error) {
	res := &Result{}
	for _, mode := range artifact.Modes() {
		dir := filepath.Join(root, mode.Dir())
		entries, err := afero.ReadDir(fsys, dir)
		if err != nil {
			if ok, _ := afero.DirExists(fsys, dir); !ok {
				continue
			}
			return nil, errors.Wrapf(err, "reading %s", dir)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
				continue
			}
			content, err := afero.ReadFile(fsys, filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, errors.Wrapf(err, "reading %s", e.Name())
			}
			res.Merge(mode.Dir()+"/"+e.Name(), Artifact(mode, e.Name(), content))
		}
	}
	return res, nil
}
