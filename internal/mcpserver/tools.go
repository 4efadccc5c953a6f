package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
)

// Tool names.
const (
	ToolSearchInstructions = "search_instructions"
	ToolSearchCollections  = "search_collections"
	ToolGetCollection      = "get_collection"
	ToolInstallArtifact    = "install_artifact"
	ToolLoadArtifact       = "load_artifact"
	ToolRefreshIndex       = "refresh_index"
)

// SearchInstructionsInput is the input of search_instructions.
type SearchInstructionsInput struct {
	Keyword        string `json:"keyword" jsonschema:"word to look for in titles, descriptions, and filenames"`
	Mode           string `json:"mode,omitempty" jsonschema:"chatmodes, instructions, prompts, agents, or any (default)"`
	TargetRepoRoot string `json:"targetRepoRoot,omitempty" jsonschema:"directory checked for already installed artifacts (default .github)"`
}

// SearchCollectionsInput is the input of search_collections.
type SearchCollectionsInput struct {
	Keyword        string `json:"keyword" jsonschema:"word to look for in collection names, descriptions, ids, and tags"`
	TargetRepoRoot string `json:"targetRepoRoot,omitempty" jsonschema:"directory checked for already installed artifacts (default .github)"`
}

// GetCollectionInput is the input of get_collection.
type GetCollectionInput struct {
	ID             string `json:"id" jsonschema:"collection id as returned by search_collections"`
	TargetRepoRoot string `json:"targetRepoRoot,omitempty" jsonschema:"directory checked for already installed artifacts (default .github)"`
}

// InstallArtifactInput is the input of install_artifact.
type InstallArtifactInput struct {
	Mode           string `json:"mode" jsonschema:"chatmodes, instructions, prompts, or agents"`
	Filename       string `json:"filename" jsonschema:"artifact filename as returned by search_instructions"`
	TargetRepoRoot string `json:"targetRepoRoot,omitempty" jsonschema:"install root (default .github)"`
	Overwrite      bool   `json:"overwrite,omitempty" jsonschema:"replace an existing file; only with the user's explicit consent"`
}

// LoadArtifactInput is the input of load_artifact.
type LoadArtifactInput struct {
	Mode     string `json:"mode" jsonschema:"chatmodes, instructions, prompts, or agents"`
	Filename string `json:"filename" jsonschema:"artifact filename as returned by search_instructions"`
}

// SearchInstructionsOutput lists ranked artifacts.
type SearchInstructionsOutput struct {
	Count   int                      `json:"count"`
	Results []catalog.ArtifactResult `json:"results"`
}

// SearchCollectionsOutput lists ranked collections.
type SearchCollectionsOutput struct {
	Count   int                        `json:"count"`
	Results []catalog.CollectionResult `json:"results"`
}

func (s *Server) registerTools() {
	addTool(s, &mcp.Tool{
		Name: ToolSearchInstructions,
		Description: "Search the Copilot artifact catalog by keyword. Results are ranked: *** title match, " +
			"** description match, * filename match. Each result says whether it already exists locally.",
	}, func(ctx context.Context, in SearchInstructionsInput) (any, error) {
		res, err := s.catalog.SearchArtifacts(ctx, in.Keyword, in.Mode, in.TargetRepoRoot)
		if err != nil {
			return nil, err
		}
		return SearchInstructionsOutput{Count: len(res), Results: nonNil(res)}, nil
	})

	addTool(s, &mcp.Tool{
		Name:        ToolSearchCollections,
		Description: "Search curated artifact collections by keyword. Each collection lists its members and whether they exist locally.",
	}, func(ctx context.Context, in SearchCollectionsInput) (any, error) {
		res, err := s.catalog.SearchCollections(ctx, in.Keyword, in.TargetRepoRoot)
		if err != nil {
			return nil, err
		}
		return SearchCollectionsOutput{Count: len(res), Results: nonNil(res)}, nil
	})

	addTool(s, &mcp.Tool{
		Name:        ToolGetCollection,
		Description: "Get one collection by id with its member artifacts.",
	}, func(ctx context.Context, in GetCollectionInput) (any, error) {
		return s.catalog.Collection(ctx, in.ID, in.TargetRepoRoot)
	})

	addTool(s, &mcp.Tool{
		Name: ToolInstallArtifact,
		Description: "Install one artifact into the target repository. Confirm with the user first. " +
			"Fails with ALREADY_EXISTS when the file is present unless overwrite is set.",
	}, func(ctx context.Context, in InstallArtifactInput) (any, error) {
		return s.catalog.Install(ctx, in.Mode, in.Filename, in.TargetRepoRoot, in.Overwrite)
	})

	addTool(s, &mcp.Tool{
		Name:        ToolLoadArtifact,
		Description: "Return an artifact's content and front matter without writing anything.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, in LoadArtifactInput) (any, error) {
		return s.catalog.Load(ctx, in.Mode, in.Filename)
	})

	addTool(s, &mcp.Tool{
		Name:        ToolRefreshIndex,
		Description: "Refetch the remote catalog listing and report artifact counts and listing warnings.",
	}, func(ctx context.Context, _ struct{}) (any, error) {
		return s.catalog.Refresh(ctx)
	})
}

// addTool registers fn with logging, panic recovery, and kind-prefixed
// error results.
func addTool[In any](s *Server, tool *mcp.Tool, fn func(context.Context, In) (any, error)) {
	name := tool.Name
	mcp.AddTool(s.server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (res *mcp.CallToolResult, _ any, _ error) {
		logger := s.logger.With("tool", name)
		started := time.Now()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool panicked", "panic", r, "stack", string(debug.Stack()))
				res = errorResult(errors.Newf("%s panicked: %v", name, r))
			}
		}()

		out, err := fn(logging.NewContext(ctx, logger), in)
		if err != nil {
			logger.Warn("tool failed", "kind", errors.KindOf(err), "error", err, "elapsed", time.Since(started))
			return errorResult(err), nil, nil
		}

		res, err = jsonResult(out)
		if err != nil {
			logger.Error("tool result not encodable", "error", err)
			return errorResult(err), nil, nil
		}
		logger.Debug("tool completed", "elapsed", time.Since(started))
		return res, nil, nil
	})
}

func jsonResult(out any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding tool result")
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}, nil
}

// errorResult renders err as "KIND: message" followed by any hints.
func errorResult(err error) *mcp.CallToolResult {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", errors.KindOf(err), err.Error())
	for _, d := range errors.Details(err) {
		b.WriteString("\nhint: ")
		b.WriteString(d)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
