package commands

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/internal/config"
	"github.com/ajilantony/copilot-agentops-mcp/internal/doctor"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

var (
	doctorJSON bool
	doctorAll  bool
)

// localFs is the filesystem doctor and validate inspect.
var localFs = afero.NewOsFs()

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed and informational checks too")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and connectivity issues",
	Long: `Run diagnostic checks on configuration, the remote catalog, and the
local install locations.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{LoadErr: configLoadErr, File: config.UsedFile()})

	if configLoadErr == nil {
		runner.AddCheck(&doctor.TokenCheck{Token: loadedConfig.Repository.Token})

		svc, _, err := service(cmd)
		if err != nil {
			return err
		}
		runner.AddCheck(&doctor.CatalogCheck{Catalog: svc})
		runner.AddCheck(&doctor.DirCheck{Fs: localFs, Path: loadedConfig.Install.DefaultRoot, Label: "install-root"})
		runner.AddCheck(&doctor.DirCheck{Fs: localFs, Path: loadedConfig.Install.LockDir, Label: "lock-dir"})
	}

	report := runner.Run(cmd.Context())

	w := cmd.OutOrStdout()
	if doctorJSON {
		if err := outputJSON(w, report); err != nil {
			return err
		}
	} else if !quiet {
		outputDoctorText(w, report)
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	hasOutput := false
	for _, result := range report.Results {
		if !doctorAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && result.Status != doctor.SeverityPass {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return green("✓")
	case doctor.SeverityInfo:
		return cyan("ℹ")
	case doctor.SeverityWarning:
		return yellow("⚠")
	case doctor.SeverityError:
		return red("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("doctor found errors")
