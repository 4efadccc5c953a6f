package metadata

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

const sampleListing = `{
  "chatmodes": [
    {"filename": "planner.chatmode.md", "title": "Planner", "description": "Plans work before coding"}
  ],
  "instructions": [
    {"filename": "dotnet-best-practices.instruction.md", "title": "DotNet Best Practices", "description": "Coding standards for .NET"},
    {"filename": "go.instructions.md", "title": "Go", "description": "Idiomatic Go guidance"}
  ],
  "prompts": [
    {"filename": "review.prompt.md", "title": "Code Review", "description": "Review checklist"}
  ],
  "agents": [],
  "collections": [
    {
      "id": "dotnet",
      "name": "DotNet Development",
      "description": "Everything for .NET",
      "tags": ["csharp", "dotnet"],
      "items": [
        {"path": "instructions/dotnet-best-practices.instruction.md", "kind": "instruction"},
        {"path": "prompts/review.prompt.md", "kind": "prompt"}
      ]
    }
  ]
}`

// fakeFetcher serves canned listings and content and counts calls.
type fakeFetcher struct {
	mu       sync.Mutex
	listing  []byte
	listErr  error
	content  map[string][]byte
	delay    time.Duration
	gate     chan struct{}
	lists    atomic.Int32
	contents atomic.Int32
}

func newFakeFetcher(listing string) *fakeFetcher {
	return &fakeFetcher{
		listing: []byte(listing),
		content: map[string][]byte{
			"instructions/dotnet-best-practices.instruction.md": []byte("# DotNet\n"),
		},
	}
}

func (f *fakeFetcher) setListing(listing string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = []byte(listing)
	f.listErr = err
}

func (f *fakeFetcher) ListRemoteArtifacts(ctx context.Context) ([]byte, error) {
	f.lists.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeFetcher) FetchContent(_ context.Context, locator string) ([]byte, error) {
	f.contents.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.content[locator]
	if !ok {
		return nil, errors.Newf("404 for %s", locator)
	}
	return data, nil
}

// fakeClock is advanced manually.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
