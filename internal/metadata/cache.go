package metadata

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
)

// Defaults applied by New when an option is left zero.
const (
	DefaultTTL            = 10 * time.Minute
	DefaultFetchTimeout   = 30 * time.Second
	DefaultContentEntries = 256
)

// Fetcher retrieves raw listing and content bytes from the remote repository.
// Implementations own transport concerns such as authentication and retries.
type Fetcher interface {
	// ListRemoteArtifacts returns the raw artifact and collection listing.
	ListRemoteArtifacts(ctx context.Context) ([]byte, error)
	// FetchContent returns the raw bytes stored at locator.
	FetchContent(ctx context.Context, locator string) ([]byte, error)
}

// Options configures a Cache.
type Options struct {
	// TTL is how long a snapshot is served without refetching.
	TTL time.Duration
	// FetchTimeout bounds every listing and content fetch.
	FetchTimeout time.Duration
	// ContentEntries is the capacity of the artifact content LRU.
	ContentEntries int
	// Clock defaults to SystemClock.
	Clock Clock
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// snapshot is published as a whole; it is never modified after Store.
type snapshot struct {
	index       *Index
	refreshedAt time.Time
}

// Cache owns the process-wide index snapshot.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	timeout time.Duration
	clock   Clock
	logger  *slog.Logger

	current atomic.Pointer[snapshot]
	group   singleflight.Group
	content *lru.Cache[string, []byte]
}

// New creates a Cache that fetches through f.
func New(f Fetcher, opts Options) (*Cache, error) {
	if f == nil {
		return nil, errors.New("metadata: nil fetcher")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.ContentEntries <= 0 {
		opts.ContentEntries = DefaultContentEntries
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscard()
	}

	content, err := lru.New[string, []byte](opts.ContentEntries)
	if err != nil {
		return nil, errors.Wrap(err, "creating content cache")
	}

	return &Cache{
		fetcher: f,
		ttl:     opts.TTL,
		timeout: opts.FetchTimeout,
		clock:   opts.Clock,
		logger:  opts.Logger,
		content: content,
	}, nil
}

// EnsureIndex returns the current index, refreshing it first when force is
// true, when no snapshot exists yet, or when the snapshot is older than the
// TTL. Concurrent refreshes collapse into one fetch. On failure the previous
// snapshot stays published.
func (c *Cache) EnsureIndex(ctx context.Context, force bool) (*Index, error) {
	if !force {
		if snap := c.current.Load(); snap != nil && c.fresh(snap) {
			return snap.index, nil
		}
	}

	// The shared refresh must not die with whichever caller started it.
	ch := c.group.DoChan("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, errors.Fetch(ctx.Err(), "waiting for metadata refresh")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Index), nil
	}
}

// Index is EnsureIndex without forcing.
func (c *Cache) Index(ctx context.Context) (*Index, error) {
	return c.EnsureIndex(ctx, false)
}

func (c *Cache) fresh(snap *snapshot) bool {
	return c.clock.Now().Sub(snap.refreshedAt) < c.ttl
}

func (c *Cache) refresh(ctx context.Context) (*Index, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := c.clock.Now()
	data, err := c.fetcher.ListRemoteArtifacts(ctx)
	if err != nil {
		c.logger.Warn("metadata refresh failed", "error", err)
		return nil, errors.WithDetail(
			errors.Fetch(err, "fetching remote listing"),
			"the remote repository may be unreachable; retry later",
		)
	}

	idx, err := Parse(data)
	if err != nil {
		c.logger.Warn("metadata listing rejected", "error", err, "bytes", len(data))
		return nil, err
	}
	for _, w := range idx.Warnings() {
		c.logger.Warn("listing entry flagged", "entry", w.String(), "skipped", w.Skipped)
	}

	if idx.Len() == 0 {
		return nil, errors.Mark(
			errors.Newf("remote listing yielded no usable artifacts (%d entries skipped)", len(idx.Warnings())),
			errors.ErrFetch,
		)
	}

	prev := c.current.Load()
	if prev == nil || prev.index.Fingerprint() != idx.Fingerprint() {
		c.content.Purge()
	}
	c.current.Store(&snapshot{index: idx, refreshedAt: c.clock.Now()})

	c.logger.Info("metadata refreshed",
		"artifacts", idx.Len(),
		"collections", len(idx.Collections()),
		"warnings", len(idx.Warnings()),
		"fingerprint", shortFingerprint(idx.Fingerprint()),
		"elapsed", c.clock.Now().Sub(started),
	)
	return idx, nil
}

// Content returns the raw bytes of a, fetching them on first use.
func (c *Cache) Content(ctx context.Context, a artifact.Artifact) ([]byte, error) {
	locator := a.Locator
	if locator == "" {
		locator = a.Key().String()
	}

	key := locator
	if snap := c.current.Load(); snap != nil {
		key = snap.index.Fingerprint() + "\x00" + locator
	}
	if data, ok := c.content.Get(key); ok {
		return bytes.Clone(data), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.fetcher.FetchContent(ctx, locator)
	if err != nil {
		return nil, errors.Fetch(err, "fetching "+locator)
	}
	c.content.Add(key, bytes.Clone(data))
	c.logger.Debug("artifact content fetched", "locator", locator, "bytes", len(data))
	return data, nil
}

// Status describes the published snapshot.
type Status struct {
	RefreshedAt time.Time             `json:"refreshedAt"`
	Stale       bool                  `json:"stale"`
	Fingerprint string                `json:"fingerprint"`
	Artifacts   int                   `json:"artifacts"`
	ByMode      map[artifact.Mode]int `json:"byMode"`
	Collections int                   `json:"collections"`
	Warnings    []Warning             `json:"warnings,omitempty"`
}

// Status reports on the published snapshot. ok is false before the first
// successful refresh.
func (c *Cache) Status() (st Status, ok bool) {
	snap := c.current.Load()
	if snap == nil {
		return Status{}, false
	}
	return Status{
		RefreshedAt: snap.refreshedAt,
		Stale:       !c.fresh(snap),
		Fingerprint: snap.index.Fingerprint(),
		Artifacts:   snap.index.Len(),
		ByMode:      snap.index.CountByMode(),
		Collections: len(snap.index.Collections()),
		Warnings:    snap.index.Warnings(),
	}, true
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
