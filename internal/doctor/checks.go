package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
)

// Check categories.
const (
	CategoryConfig  = "config"
	CategoryRemote  = "remote"
	CategoryInstall = "install"
)

// ConfigCheck reports whether configuration loaded and validated.
type ConfigCheck struct {
	// LoadErr is the error from loading, if any.
	LoadErr error
	// File is the config file that was read, or "" for defaults only.
	File string
}

var _ Check = (*ConfigCheck)(nil)

// Name implements Check.
func (c *ConfigCheck) Name() string { return "config-valid" }

// Category implements Check.
func (c *ConfigCheck) Category() string { return CategoryConfig }

// Run implements Check.
func (c *ConfigCheck) Run(context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	switch {
	case c.LoadErr != nil:
		res.Status = SeverityError
		res.Message = c.LoadErr.Error()
		res.FixHint = "fix the listed keys in the config file or AGENTOPS_* environment variables"
	case c.File == "":
		res.Status = SeverityPass
		res.Message = "using defaults and environment (no config file found)"
	default:
		res.Status = SeverityPass
		res.Message = "loaded " + c.File
		res.Details = map[string]any{"file": c.File}
	}
	return res
}

// TokenCheck reports whether a repository token is configured.
type TokenCheck struct {
	Token string
}

var _ Check = (*TokenCheck)(nil)

// Name implements Check.
func (c *TokenCheck) Name() string { return "repository-token" }

// Category implements Check.
func (c *TokenCheck) Category() string { return CategoryConfig }

// Run implements Check.
func (c *TokenCheck) Run(context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	if strings.TrimSpace(c.Token) == "" {
		res.Status = SeverityInfo
		res.Message = "no token configured; anonymous requests are rate limited"
		res.FixHint = "set GITHUB_TOKEN or AGENTOPS_REPOSITORY_TOKEN for private repositories"
		return res
	}
	res.Status = SeverityPass
	res.Message = "token configured (" + logging.MaskValue(c.Token) + ")"
	return res
}

// Refresher forces a catalog refresh.
type Refresher interface {
	Refresh(ctx context.Context) (catalog.RefreshResult, error)
}

// CatalogCheck fetches the remote listing.
type CatalogCheck struct {
	Catalog Refresher
}

var _ Check = (*CatalogCheck)(nil)

// Name implements Check.
func (c *CatalogCheck) Name() string { return "remote-listing" }

// Category implements Check.
func (c *CatalogCheck) Category() string { return CategoryRemote }

// Run implements Check.
func (c *CatalogCheck) Run(ctx context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}

	summary, err := c.Catalog.Refresh(ctx)
	if err != nil {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("%s: %v", errors.KindOf(err), err)
		if details := errors.Details(err); len(details) > 0 {
			res.FixHint = details[0]
		}
		return res
	}

	res.Details = map[string]any{
		"artifacts":   summary.Artifacts,
		"collections": summary.Collections,
		"fingerprint": summary.Fingerprint,
	}
	res.Message = fmt.Sprintf("%d artifacts, %d collections", summary.Artifacts, summary.Collections)
	if len(summary.Warnings) > 0 {
		res.Status = SeverityWarning
		res.Message += fmt.Sprintf(", %d listing entries flagged", len(summary.Warnings))
		res.Details["warnings"] = summary.Warnings
		res.FixHint = "run 'agentops refresh' to see the flagged entries"
		return res
	}
	res.Status = SeverityPass
	return res
}

// DirCheck verifies a directory is writable, or can be created.
type DirCheck struct {
	Fs   afero.Fs
	Path string
	// Label names the directory in the check name, e.g. "install-root".
	Label string
}

var _ Check = (*DirCheck)(nil)

// Name implements Check.
func (c *DirCheck) Name() string { return c.Label + "-writable" }

// Category implements Check.
func (c *DirCheck) Category() string { return CategoryInstall }

// Run implements Check.
func (c *DirCheck) Run(context.Context) *CheckResult {
	res := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	info, err := c.Fs.Stat(c.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.Status = SeverityInfo
		res.Message = c.Path + " does not exist yet; it is created on first use"
		return res
	case err != nil:
		res.Status = SeverityError
		res.Message = fmt.Sprintf("cannot stat %s: %v", c.Path, err)
		return res
	case !info.IsDir():
		res.Status = SeverityError
		res.Message = c.Path + " exists but is not a directory"
		res.FixHint = "move the file out of the way or choose another location"
		return res
	}

	probe, err := afero.TempFile(c.Fs, c.Path, ".agentops-doctor-*")
	if err != nil {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("%s is not writable: %v", c.Path, err)
		res.FixHint = "check the directory permissions"
		return res
	}
	name := probe.Name()
	_ = probe.Close()
	_ = c.Fs.Remove(name)

	res.Status = SeverityPass
	res.Message = c.Path + " is writable"
	return res
}
