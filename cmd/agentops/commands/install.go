package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	installRoot      string
	installOverwrite bool
)

func init() {
	installCmd.Flags().StringVar(&installRoot, "root", "", "install root (default .github)")
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "replace the file if it already exists")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <mode> <filename>",
	Short: "Install one artifact into the project",
	Long: `Download an artifact and write it to <root>/<mode>/<filename>.

An existing file is never replaced unless --overwrite is given.`,
	Example: `  agentops install instructions dotnet-best-practices.instruction.md
  agentops install prompts review.prompt.md --root ./.github --overwrite

  See Also: agentops search`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Install(cmd.Context(), args[0], args[1], installRoot, installOverwrite)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Installed"), res.Path)
		}
		return nil
	},
}
