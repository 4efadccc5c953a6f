// Package catalogtest provides an in-memory catalog for tests of the
// front ends built on top of it.
package catalogtest

import (
	"context"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/install"
	"github.com/ajilantony/copilot-agentops-mcp/internal/lock"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
	"github.com/ajilantony/copilot-agentops-mcp/internal/reconcile"
)

// Listing is a small listing covering every mode and one collection.
const Listing = `{
  "chatmodes": [
    {"filename": "planner.chatmode.md", "title": "Planner", "description": "Plans work before coding"}
  ],
  "instructions": [
    {"filename": "dotnet-best-practices.instruction.md", "title": "DotNet Best Practices", "description": "Coding standards for .NET"},
    {"filename": "go.instructions.md", "title": "Go", "description": "Idiomatic Go guidance"}
  ],
  "prompts": [
    {"filename": "review.prompt.md", "title": "Code Review", "description": "Review checklist for dotnet and go"}
  ],
  "agents": [
    {"filename": "triage.agent.md", "title": "Triage", "description": "Sorts incoming issues"}
  ],
  "collections": [
    {
      "id": "dotnet",
      "name": "DotNet Development",
      "description": "Everything for .NET",
      "tags": ["csharp", "dotnet"],
      "items": [
        {"path": "instructions/dotnet-best-practices.instruction.md", "kind": "instruction"},
        {"path": "prompts/review.prompt.md", "kind": "prompt"},
        {"path": "prompts/gone.prompt.md", "kind": "prompt"}
      ]
    }
  ]
}`

// Content holds the bytes served for each locator in Listing.
var Content = map[string]string{
	"chatmodes/planner.chatmode.md":                     "---\ndescription: Plans work\n---\n# Planner\n",
	"instructions/dotnet-best-practices.instruction.md": "---\ndescription: Coding standards for .NET\napplyTo: '**/*.cs'\n---\n# DotNet\n",
	"instructions/go.instructions.md":                   "# Go\n",
	"prompts/review.prompt.md":                          "---\nmode: agent\ntools: [codebase]\n---\nReview the change.\n",
	"agents/triage.agent.md":                            "---\ndescription: Sorts issues\n---\nTriage.\n",
}

// Fetcher serves Listing and Content from memory.
type Fetcher struct {
	mu      sync.Mutex
	listing string
	err     error
}

// NewFetcher returns a Fetcher serving listing.
func NewFetcher(listing string) *Fetcher {
	return &Fetcher{listing: listing}
}

// Fail makes every later listing call return err.
func (f *Fetcher) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// ListRemoteArtifacts implements metadata.Fetcher.
func (f *Fetcher) ListRemoteArtifacts(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.listing), ctx.Err()
}

// FetchContent implements metadata.Fetcher.
func (f *Fetcher) FetchContent(_ context.Context, locator string) ([]byte, error) {
	c, ok := Content[locator]
	if !ok {
		return nil, errors.Newf("%s: 404 Not Found", locator)
	}
	return []byte(c), nil
}

// NewService builds a catalog over fetcher and fsys with a real lock
// directory under t.TempDir.
func NewService(t *testing.T, fetcher metadata.Fetcher, fsys afero.Fs) *catalog.Service {
	t.Helper()
	logger := logging.ForTest(t)

	cache, err := metadata.New(fetcher, metadata.Options{Logger: logger})
	if err != nil {
		t.Fatalf("metadata.New: %v", err)
	}
	rec := reconcile.New(fsys, reconcile.DefaultRoot)
	mgr := install.NewManager(cache, fsys, rec, lock.New(t.TempDir()), logger)
	return catalog.New(cache, rec, mgr, logger)
}
