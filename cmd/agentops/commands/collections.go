package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
)

var (
	collectionsRoot string
	collectionsJSON bool
)

func init() {
	collectionsCmd.PersistentFlags().StringVar(&collectionsRoot, "root", "", "install root checked for existing files (default .github)")
	collectionsCmd.PersistentFlags().BoolVar(&collectionsJSON, "json", false, "output in JSON format")
	collectionsCmd.AddCommand(collectionsShowCmd)
	rootCmd.AddCommand(collectionsCmd)
}

var collectionsCmd = &cobra.Command{
	Use:     "collections <keyword>",
	Aliases: []string{"collection"},
	Short:   "Search curated artifact collections",
	Long: `Search collections by keyword in their name, description, id, and tags.
Each collection lists its member artifacts and whether they are installed.`,
	Example: `  # Find collections about .NET
  agentops collections dotnet

  # Show one collection
  agentops collections show csharp-dotnet-development

  See Also: agentops search, agentops install`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		results, err := svc.SearchCollections(cmd.Context(), args[0], collectionsRoot)
		if err != nil {
			return err
		}
		if collectionsJSON {
			return outputJSON(cmd.OutOrStdout(), results)
		}
		return outputCollections(cmd.OutOrStdout(), results)
	},
}

var collectionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one collection by id",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		c, err := svc.Collection(cmd.Context(), args[0], collectionsRoot)
		if err != nil {
			return err
		}
		if collectionsJSON {
			return outputJSON(cmd.OutOrStdout(), c)
		}
		return outputCollections(cmd.OutOrStdout(), []catalog.CollectionResult{c})
	},
}

func outputCollections(w io.Writer, results []catalog.CollectionResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No collections found.")
		return nil
	}

	for i, c := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := bold(c.Name)
		if c.Stars != "" {
			header = c.Stars + " " + header
		}
		fmt.Fprintf(w, "%s %s\n", header, gray("("+c.ID+")"))
		if c.Description != "" {
			fmt.Fprintf(w, "  %s\n", c.Description)
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(w, "  tags: %s\n", strings.Join(c.Tags, ", "))
		}
		for _, item := range c.Items {
			fmt.Fprintf(w, "  - %s/%s  installed: %s\n", item.Mode, cyan(item.Filename), installedMark(item.Exists))
		}
		for _, missing := range c.Missing {
			fmt.Fprintf(w, "  - %s  %s\n", missing, gray("(not in catalog)"))
		}
	}
	return nil
}
