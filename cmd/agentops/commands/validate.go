package commands

import (
	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/validator"
)

var (
	validateRoot string
	validateJSON bool
)

// errValidateFailed is returned when any installed artifact has errors.
var errValidateFailed = errors.New("installed artifacts have errors")

func init() {
	validateCmd.Flags().StringVar(&validateRoot, "root", "", "install root to check (default from config)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"lint"},
	Short:   "Check installed artifacts for naming and front matter problems",
	Long: `Read every Markdown file under <root>/<mode>/ and report files Copilot
may fail to load: unclosed or invalid front matter, unknown prompt modes,
bad applyTo globs, and names that do not follow the mode's suffix.

Exits 1 when any error is found. Warnings alone do not fail the command.`,
	Example: `  agentops validate
  agentops validate --root ./service/.github --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		root := validateRoot
		if root == "" {
			root = loadedConfig.Install.DefaultRoot
		}

		res, err := validator.Tree(localFs, root)
		if err != nil {
			return errors.NewSystemError(err, "")
		}

		format := validator.FormatText
		if validateJSON {
			format = validator.FormatJSON
		}
		if validateJSON || !quiet {
			if err := validator.NewReporter(cmd.OutOrStdout(), format, verbosity > 0).Report(res); err != nil {
				return err
			}
		}
		if res.HasErrors() {
			return errors.NewExitError(errValidateFailed, errors.ExitUser)
		}
		return nil
	},
}
