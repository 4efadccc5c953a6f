package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. verbose includes info issues in
// text output.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		r.reportText(result)
		return nil
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	out := *result
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) {
	errs := result.Errors()
	warnings := result.Warnings()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d file(s) checked, no problems", result.Files))
		r.printGroup("Notes:", result.filter(SeverityInfo), color.FgHiBlack, r.verbose)
		return
	}

	var summary []string
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	fmt.Fprintf(r.out, "%d file(s) checked: %s\n\n", result.Files, strings.Join(summary, ", "))

	r.printGroup("Errors:", errs, color.FgRed, true)
	r.printGroup("Warnings:", warnings, color.FgYellow, true)
	r.printGroup("Notes:", result.filter(SeverityInfo), color.FgHiBlack, r.verbose)
}

func (r *Reporter) printGroup(title string, issues []Issue, c color.Attribute, show bool) {
	if !show || len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out, title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
	fmt.Fprintln(r.out)
}

// printIssue writes "  • file: field: message [value]".
func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()
	dim := color.New(color.FgHiBlack)

	var sb strings.Builder
	sb.WriteString("  • ")
	if i.File != "" {
		sb.WriteString(i.File)
		sb.WriteString(": ")
	}
	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if i.Value != nil {
		valStr := []rune(fmt.Sprintf("%v", i.Value))
		if len(valStr) > 50 {
			valStr = append(valStr[:47], []rune("...")...)
		}
		sb.WriteString(dim.Sprintf(" [%s]", string(valStr)))
	}

	fmt.Fprintln(r.out, sb.String())
}
