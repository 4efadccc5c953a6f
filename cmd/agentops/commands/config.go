package commands

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajilantony/copilot-agentops-mcp/internal/config"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

var configFormat string

func init() {
	configCmd.PersistentFlags().StringVarP(&configFormat, "format", "f", "yaml", "output format: yaml, toml, json")
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect agentops configuration",
	Long: `Inspect the effective configuration.

Settings come from, in increasing precedence: built-in defaults, the config
file, a .env file in the working directory, and AGENTOPS_* environment
variables (for example AGENTOPS_REPOSITORY_OWNER). GITHUB_TOKEN is used as the
repository token when AGENTOPS_REPOSITORY_TOKEN is unset.

Without a subcommand, shows the configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with secrets masked",
	Example: `  agentops config show
  agentops config show --format toml`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	w := cmd.OutOrStdout()
	if f := config.UsedFile(); f != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "# config file: %s\n", f)
	}
	return writeSettings(w, loadedConfig.Settings(), configFormat)
}

func writeSettings(w io.Writer, settings map[string]any, format string) error {
	switch format {
	case "yaml", "yml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "marshaling config")
		}
		_, err = w.Write(data)
		return err
	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "marshaling config")
		}
		_, err = w.Write(data)
		return err
	case "json":
		return outputJSON(w, settings)
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "valid formats: yaml, toml, json")
	}
}
