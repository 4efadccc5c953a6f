package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadJSON bool

func init() {
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "output content and front matter as JSON")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:     "load <mode> <filename>",
	Aliases: []string{"show"},
	Short:   "Print an artifact without installing it",
	Args:    exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Load(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if loadJSON {
			return outputJSON(cmd.OutOrStdout(), res)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), res.Content)
		return err
	},
}
