package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
)

var refreshJSON bool

func init() {
	refreshCmd.Flags().BoolVar(&refreshJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the remote listing and report what it contains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		if refreshJSON {
			return outputJSON(cmd.OutOrStdout(), res)
		}
		outputRefresh(cmd.OutOrStdout(), res)
		return nil
	},
}

func outputRefresh(w io.Writer, res catalog.RefreshResult) {
	fmt.Fprintf(w, "%s %d artifacts, %d collections\n", bold("Catalog:"), res.Artifacts, res.Collections)
	for _, m := range artifact.Modes() {
		fmt.Fprintf(w, "  %-13s %d\n", m.String()+":", res.ByMode[m])
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%d listing warning(s):", len(res.Warnings))))
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  %s\n", gray(warn))
		}
	}
}
