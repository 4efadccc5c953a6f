// Package commands implements the CLI commands for agentops.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/cmd"
	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/config"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// loadedConfig and configLoadErr hold the result of loading configuration.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/agentops/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("agentops version {{.Version}}\n")

	// Errors are printed by Execute with their exit code and suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.NewUserError(err, fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()))
	})
}

// exactArgs is cobra.ExactArgs with a user-error exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(c, args); err != nil {
			return errors.NewUserError(err, fmt.Sprintf("Usage: %s", c.UseLine()))
		}
		return nil
	}
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "agentops",
	Short: "Search and install GitHub Copilot customization artifacts",
	Long: `agentops finds chat modes, instructions, prompts, and agents in a remote
Copilot customization repository and installs them into a project's .github
directory.

Run 'agentops serve' to expose the same operations as MCP tools to an AI agent.`,
	Example: `  # Find instructions about .NET
  agentops search dotnet --mode instructions

  # Install one of them
  agentops install instructions dotnet-best-practices.instruction.md

  # Run the MCP server over stdio
  agentops serve

  See Also: agentops collections, agentops config show`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		initConfig()
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"use one of --quiet or --verbose")
	}

	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat),
			"valid formats: text, json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AGENTOPS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{logging.NewFormatHandler(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})}

	if logFile != "" {
		path := paths.LogFile(logFile)
		if err := paths.EnsureDir(filepath.Dir(path), 0o700); err != nil {
			return errors.NewUserError(err, "check the --log-file location")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check the --log-file location")
		}
		// File output uses JSON format
		handlers = append(handlers, logging.NewFormatHandler(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	logger := slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// service returns the catalog for the loaded configuration.
func service(cmd *cobra.Command) (*catalog.Service, *config.Config, error) {
	if configLoadErr != nil {
		return nil, nil, errors.NewConfigError(configLoadErr)
	}
	logger := logging.FromContext(cmd.Context())
	svc, err := newService(loadedConfig, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, loadedConfig, nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	exitErr := errors.ExitFor(err)
	label := color.New(color.FgRed, color.Bold).Sprint("Error:")
	fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %s\n", label, exitErr.Error())
	if exitErr.Suggestion != "" {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "  %s\n", exitErr.Suggestion)
	}
	return exitErr.Code
}
