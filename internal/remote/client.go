// Package remote fetches the artifact listing and raw artifact content from a
// repository served in the raw.githubusercontent.com layout:
// <base>/<owner>/<repo>/<ref>/<path>.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/pkg/fileutil"
)

// Defaults for the public awesome-copilot repository.
const (
	DefaultBaseURL      = "https://raw.githubusercontent.com"
	DefaultOwner        = "github"
	DefaultRepository   = "awesome-copilot"
	DefaultRef          = "main"
	DefaultMetadataPath = "metadata.json"
)

// Config locates the remote repository.
type Config struct {
	BaseURL      string
	Owner        string
	Repository   string
	Ref          string
	MetadataPath string
	// Token, when set, is sent as a bearer token.
	Token string
	// UserAgent defaults to "agentops".
	UserAgent string
	// MaxBytes caps every response body. Zero means fileutil.MaxFileSize.
	MaxBytes int64
	// Timeout bounds each request when New builds the HTTP client.
	// Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is the per-request timeout of the built-in HTTP client.
const DefaultTimeout = 30 * time.Second

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client implements metadata.Fetcher over HTTP. It does not retry.
type Client struct {
	cfg    Config
	root   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// New validates cfg and returns a Client. A nil httpClient means a client
// with cfg.Timeout as its request timeout.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	cfg = withDefaults(cfg)

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing base URL %q", cfg.BaseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Newf("base URL %q must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, errors.Newf("base URL %q has no host", cfg.BaseURL)
	}
	for name, v := range map[string]string{"owner": cfg.Owner, "repository": cfg.Repository, "ref": cfg.Ref} {
		if hasParentSegment(v) || strings.TrimSpace(v) == "" {
			return nil, errors.Newf("invalid repository %s %q", name, v)
		}
	}

	root := base.JoinPath(cfg.Owner, cfg.Repository, cfg.Ref)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Client{cfg: cfg, root: root, http: httpClient, logger: logger}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Owner == "" {
		cfg.Owner = DefaultOwner
	}
	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
	}
	if cfg.Ref == "" {
		cfg.Ref = DefaultRef
	}
	if cfg.MetadataPath == "" {
		cfg.MetadataPath = DefaultMetadataPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "agentops"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// ListRemoteArtifacts returns the raw listing document.
func (c *Client) ListRemoteArtifacts(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.cfg.MetadataPath)
}

// FetchContent returns the raw bytes at locator, a repository-relative path.
func (c *Client) FetchContent(ctx context.Context, locator string) ([]byte, error) {
	return c.get(ctx, locator)
}

// URL returns the absolute URL of a repository-relative path.
func (c *Client) URL(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	clean := path.Clean("/" + locator)
	if clean == "/" || hasParentSegment(locator) {
		return "", errors.Newf("invalid content locator %q", locator)
	}
	return c.root.JoinPath(strings.Split(strings.TrimPrefix(clean, "/"), "/")...).String(), nil
}

// hasParentSegment reports whether any slash-separated segment of p is "..".
// Names that merely contain two dots, such as "v1..2.prompt.md", are allowed.
func hasParentSegment(p string) bool {
	return slices.Contains(strings.Split(strings.ReplaceAll(p, `\`, "/"), "/"), "..")
}

func (c *Client) get(ctx context.Context, locator string) ([]byte, error) {
	target, err := c.URL(locator)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", target)
	}
	defer resp.Body.Close()

	c.logger.Debug("remote fetch", "url", target, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := fileutil.ReadAllWithLimit(resp.Body, c.cfg.MaxBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", target)
	}
	return data, nil
}
