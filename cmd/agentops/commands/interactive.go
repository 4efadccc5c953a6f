package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/cli/prompt"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// errPickAborted reports that the user left the picker without choosing.
var errPickAborted = errors.New("selection aborted")

// picker chooses one of results and returns its index.
type picker func(results []catalog.ArtifactResult) (int, error)

// defaultPicker uses the fuzzy finder on a terminal and a numbered prompt
// otherwise.
func defaultPicker(query string) picker {
	if prompt.IsTerminal(os.Stdin) && prompt.IsTerminal(os.Stdout) {
		return fuzzyPick
	}
	return func(results []catalog.ArtifactResult) (int, error) {
		idx, err := prompt.New().Select(query, labels(results))
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return 0, errPickAborted
		}
		return idx, err
	}
}

func fuzzyPick(results []catalog.ArtifactResult) (int, error) {
	idx, err := fuzzyfinder.Find(
		results,
		func(i int) string {
			return fmt.Sprintf("%s %s: %s", results[i].Stars, results[i].Mode, results[i].Title)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			r := results[i]
			installed := "no"
			if r.Exists {
				installed = "yes"
			}
			return fmt.Sprintf("Title: %s\nMode: %s\nFile: %s\nMatch: %s\nInstalled: %s\n\nDescription:\n%s",
				r.Title, r.Mode, r.Filename, r.Tier, installed, r.Description)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, errPickAborted
		}
		return 0, errors.Wrap(err, "interactive search failed")
	}
	return idx, nil
}

func labels(results []catalog.ArtifactResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = fmt.Sprintf("%s %s/%s - %s", r.Stars, r.Mode, r.Filename, r.Title)
	}
	return out
}
