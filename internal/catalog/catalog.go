// Package catalog composes the metadata cache, search engine, local
// reconciler, and install manager into the operations every front end
// (MCP tools and CLI commands) exposes.
package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/install"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
	"github.com/ajilantony/copilot-agentops-mcp/internal/reconcile"
	"github.com/ajilantony/copilot-agentops-mcp/internal/search"
	"github.com/ajilantony/copilot-agentops-mcp/pkg/frontmatter"
)

// Service is safe for concurrent use; the cache is its only shared state.
type Service struct {
	cache      *metadata.Cache
	reconciler *reconcile.Reconciler
	installer  *install.Manager
	logger     *slog.Logger
}

// New creates a Service.
func New(cache *metadata.Cache, reconciler *reconcile.Reconciler, installer *install.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Service{cache: cache, reconciler: reconciler, installer: installer, logger: logger}
}

// ArtifactResult is an artifact as reported to callers.
type ArtifactResult struct {
	Mode        artifact.Mode `json:"mode"`
	Filename    string        `json:"filename"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tier        string        `json:"tier,omitempty"`
	Stars       string        `json:"stars,omitempty"`
	Exists      bool          `json:"exists"`
	Path        string        `json:"path"`
}

// CollectionResult is a collection with its members' local state.
type CollectionResult struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Tier        string           `json:"tier,omitempty"`
	Stars       string           `json:"stars,omitempty"`
	Items       []ArtifactResult `json:"items"`
	Missing     []string         `json:"missing,omitempty"`
}

// InstallResult reports a completed install.
type InstallResult struct {
	Mode     artifact.Mode `json:"mode"`
	Filename string        `json:"filename"`
	Path     string        `json:"path"`
}

// LoadResult is an artifact's raw content with its front matter decoded.
type LoadResult struct {
	ArtifactResult
	Matter  frontmatter.Matter `json:"frontmatter"`
	Content string             `json:"content"`
	Body    string             `json:"body"`
}

// RefreshResult summarizes the published index.
type RefreshResult struct {
	RefreshedAt time.Time             `json:"refreshedAt"`
	Stale       bool                  `json:"stale"`
	Fingerprint string                `json:"fingerprint"`
	Artifacts   int                   `json:"artifacts"`
	ByMode      map[artifact.Mode]int `json:"byMode"`
	Collections int                   `json:"collections"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// SearchArtifacts ranks artifacts for keyword and flags those present under
// root. modeFilter is "any", empty, or a mode name.
func (s *Service) SearchArtifacts(ctx context.Context, keyword, modeFilter, root string) ([]ArtifactResult, error) {
	if err := search.ValidateKeyword(keyword); err != nil {
		return nil, err
	}
	filter, err := artifact.ParseModeFilter(modeFilter)
	if err != nil {
		return nil, err
	}
	idx, err := s.cache.Index(ctx)
	if err != nil {
		return nil, err
	}

	hits, err := search.Artifacts(idx, keyword, filter)
	if err != nil {
		return nil, err
	}

	candidates := make([]artifact.Artifact, len(hits))
	for i, h := range hits {
		candidates[i] = h.Artifact
	}
	present, err := s.reconciler.CheckExisting(root, candidates)
	if err != nil {
		return nil, err
	}

	root = s.reconciler.Root(root)
	results := make([]ArtifactResult, len(hits))
	for i, h := range hits {
		results[i] = toResult(h.Artifact, root, present[h.Artifact.Key()])
		results[i].Tier = h.Tier.String()
		results[i].Stars = h.Tier.Stars()
	}

	s.logger.Debug("artifact search", "keyword", keyword, "mode", filter, "hits", len(results))
	return results, nil
}

// SearchCollections ranks collections for keyword and resolves their members.
func (s *Service) SearchCollections(ctx context.Context, keyword, root string) ([]CollectionResult, error) {
	if err := search.ValidateKeyword(keyword); err != nil {
		return nil, err
	}
	idx, err := s.cache.Index(ctx)
	if err != nil {
		return nil, err
	}
	hits, err := search.Collections(idx, keyword)
	if err != nil {
		return nil, err
	}

	results := make([]CollectionResult, 0, len(hits))
	for _, h := range hits {
		r, err := s.collectionResult(h.Collection, h.Members, h.Missing, root)
		if err != nil {
			return nil, err
		}
		r.Tier = h.Tier.String()
		r.Stars = h.Tier.Stars()
		results = append(results, r)
	}

	s.logger.Debug("collection search", "keyword", keyword, "hits", len(results))
	return results, nil
}

// Collection returns one collection by id.
func (s *Service) Collection(ctx context.Context, id, root string) (CollectionResult, error) {
	idx, err := s.cache.Index(ctx)
	if err != nil {
		return CollectionResult{}, err
	}
	c, ok := idx.Collection(id)
	if !ok {
		return CollectionResult{}, errors.WithDetail(
			errors.NotFoundf("collection %q not found", id),
			"use search_collections to list collection ids",
		)
	}
	members, missing := idx.Members(c)
	return s.collectionResult(c, members, missing, root)
}

func (s *Service) collectionResult(c artifact.Collection, members []artifact.Artifact, missing []artifact.Key, root string) (CollectionResult, error) {
	present, err := s.reconciler.CheckExisting(root, members)
	if err != nil {
		return CollectionResult{}, err
	}
	root = s.reconciler.Root(root)

	r := CollectionResult{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Tags:        c.Tags,
		Items:       make([]ArtifactResult, len(members)),
	}
	for i, m := range members {
		r.Items[i] = toResult(m, root, present[m.Key()])
	}
	for _, k := range missing {
		r.Missing = append(r.Missing, k.String())
	}
	return r, nil
}

// Install writes (mode, filename) under root. Overwriting an existing file
// happens only when overwrite is true.
func (s *Service) Install(ctx context.Context, mode, filename, root string, overwrite bool) (InstallResult, error) {
	m, err := parseInstallMode(mode)
	if err != nil {
		return InstallResult{}, err
	}
	p, err := s.installer.Install(ctx, m, filename, root, install.Options{Overwrite: overwrite})
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Mode: m, Filename: filename, Path: p}, nil
}

// Load returns the content of (mode, filename) without writing anything.
func (s *Service) Load(ctx context.Context, mode, filename string) (LoadResult, error) {
	m, err := artifact.ParseMode(mode)
	if err != nil {
		return LoadResult{}, err
	}
	if err := artifact.ValidateFilename(filename); err != nil {
		return LoadResult{}, err
	}
	idx, err := s.cache.Index(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	key := artifact.Key{Mode: m, Filename: filename}
	a, ok := idx.Lookup(key)
	if !ok {
		return LoadResult{}, errors.NotFoundf("%s is not in the artifact index", key)
	}

	content, err := s.cache.Content(ctx, a)
	if err != nil {
		return LoadResult{}, err
	}

	res := LoadResult{
		ArtifactResult: toResult(a, "", false),
		Content:        string(content),
	}
	body, err := frontmatter.Parse(bytes.NewReader(content), &res.Matter)
	if err != nil {
		// Content is served as-is; a broken header only loses the decoded fields.
		s.logger.Warn("artifact front matter unreadable", "artifact", key.String(), "error", err)
		body = content
	}
	res.Body = string(body)
	return res, nil
}

// Refresh forces a metadata refresh and summarizes the result.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	if _, err := s.cache.EnsureIndex(ctx, true); err != nil {
		return RefreshResult{}, err
	}
	return s.Status()
}

// Status summarizes the published index without fetching.
func (s *Service) Status() (RefreshResult, error) {
	st, ok := s.cache.Status()
	if !ok {
		return RefreshResult{}, errors.NotFoundf("the artifact index has not been loaded yet")
	}
	res := RefreshResult{
		RefreshedAt: st.RefreshedAt,
		Stale:       st.Stale,
		Fingerprint: st.Fingerprint,
		Artifacts:   st.Artifacts,
		ByMode:      st.ByMode,
		Collections: st.Collections,
	}
	for _, w := range st.Warnings {
		res.Warnings = append(res.Warnings, w.String())
	}
	return res, nil
}

func toResult(a artifact.Artifact, root string, exists bool) ArtifactResult {
	r := ArtifactResult{
		Mode:        a.Mode,
		Filename:    a.Filename,
		Title:       a.Title,
		Description: a.Description,
		Exists:      exists,
		Path:        a.Key().String(),
	}
	if root != "" {
		r.Path = a.LocalPath(root)
	}
	return r
}

// parseInstallMode accepts "undefined" so the install boundary can reject it
// as InvalidMode; unknown names are InvalidMode as well.
func parseInstallMode(s string) (artifact.Mode, error) {
	var m artifact.Mode
	if err := m.UnmarshalText([]byte(s)); err != nil {
		return artifact.Undefined, errors.Mark(err, errors.ErrInvalidMode)
	}
	return m, nil
}
