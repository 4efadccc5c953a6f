package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/cli/prompt"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

var (
	searchMode        string
	searchRoot        string
	searchJSON        bool
	searchInteractive bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "any",
		"filter by mode: chatmodes, instructions, prompts, agents, any")
	searchCmd.Flags().StringVar(&searchRoot, "root", "", "install root checked for existing files (default .github)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output in JSON format")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false,
		"pick a result with a fuzzy finder and install it")
	searchCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search the remote artifact catalog",
	Long: `Search chat modes, instructions, prompts, and agents by keyword.

Matching is case-insensitive. Results are ranked by where the keyword
appears: *** in the title, ** in the description, * in the filename.
The INSTALLED column shows whether the file already exists under --root.`,
	Example: `  # Search everything
  agentops search dotnet

  # Only prompts, as JSON
  agentops search review --mode prompts --json

  # Pick and install interactively
  agentops search testing -i

  See Also: agentops install, agentops collections`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		results, err := svc.SearchArtifacts(cmd.Context(), args[0], searchMode, searchRoot)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case searchJSON:
			return outputJSON(w, results)
		case searchInteractive:
			return runInteractive(cmd.Context(), w, svc, results, searchRoot, defaultPicker(args[0]), prompt.New())
		default:
			return outputArtifacts(w, results)
		}
	},
}

// outputArtifacts writes results as a table.
func outputArtifacts(w io.Writer, results []catalog.ArtifactResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No artifacts found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		bold("RANK"), bold("MODE"), bold("FILENAME"), bold("TITLE"), bold("INSTALLED"))
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Stars,
			r.Mode,
			cyan(r.Filename),
			truncate(r.Title, 40),
			installedMark(r.Exists))
	}
	return errors.Wrap(tw.Flush(), "writing results")
}

// runInteractive lets the user pick one result and installs it after a
// confirmation. An existing file is only replaced after a second, explicit
// confirmation.
func runInteractive(ctx context.Context, w io.Writer, svc *catalog.Service, results []catalog.ArtifactResult, root string, pick picker, p *prompt.Prompter) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No artifacts found.")
		return nil
	}

	idx, err := pick(results)
	if err != nil {
		if errors.Is(err, errPickAborted) {
			return nil
		}
		return err
	}
	r := results[idx]

	fmt.Fprintf(w, "%s %s\n", bold("Selected:"), r.Title)
	fmt.Fprintf(w, "  %s/%s\n", r.Mode, r.Filename)
	if r.Description != "" {
		fmt.Fprintf(w, "  %s\n", gray(r.Description))
	}

	ok, err := p.Confirm(fmt.Sprintf("Install to %s?", r.Path))
	if err != nil || !ok {
		if err == nil {
			fmt.Fprintln(w, "Skipped.")
		}
		return err
	}

	overwrite := false
	if r.Exists {
		overwrite, err = p.Confirm(fmt.Sprintf("%s already exists. Overwrite?", r.Path))
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Skipped.")
			return nil
		}
	}

	res, err := svc.Install(ctx, r.Mode.String(), r.Filename, root, overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", green("Installed"), res.Path)
	return nil
}
