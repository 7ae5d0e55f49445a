package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/gertty/internal/doctor"
	"github.com/thoreinstein/gertty/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorOnline  bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorOnline, "online", false,
		"also contact the server and check the credentials")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"restrict the file permissions when a check reports them")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on the configuration file and the resources
the selected server points at: schema, file permissions, CA bundle,
database, lock file and git root. With --online the server is contacted.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "pick one output mode")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	target := doctor.NewTarget(resolveOptions(cmd))
	runner := doctor.NewRunner()
	doctor.Standard(runner, target, doctorOnline)

	report := runner.Run(cmd.Context())

	if doctorFix && hasFixes(runner) {
		if err := snapshot(cmd, target.Path()); err != nil {
			return err
		}
		if fixes := applyFixes(runner); len(fixes) > 0 {
			if !doctorQuiet && !doctorJSON {
				printFixes(cmd.OutOrStdout(), fixes)
			}
			// Fixes change what the checks see; report the state after them.
			target = doctor.NewTarget(resolveOptions(cmd))
			runner = doctor.NewRunner()
			doctor.Standard(runner, target, doctorOnline)
			report = runner.Run(cmd.Context())
		}
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func hasFixes(runner *doctor.Runner) bool {
	for _, check := range runner.Checks() {
		if fixer, ok := check.(doctor.Fixer); ok && fixer.CanFix() {
			return true
		}
	}
	return false
}

func applyFixes(runner *doctor.Runner) []doctor.FixResult {
	var fixes []doctor.FixResult
	for _, check := range runner.Checks() {
		if fixer, ok := check.(doctor.Fixer); ok && fixer.CanFix() {
			fixes = append(fixes, fixer.Fix()...)
		}
	}
	return fixes
}

func printFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		icon := "✓"
		if !f.Fixed {
			icon = "✗"
		}
		fmt.Fprintf(w, "%s fix %s: %s\n", icon, f.Path, f.Description)
	}
	fmt.Fprintln(w)
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}
	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) error {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
		if showAll {
			printDetails(w, result.Details)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func printDetails(w io.Writer, details map[string]any) {
	for _, key := range sortedKeys(details) {
		switch v := details[key].(type) {
		case []string:
			fmt.Fprintf(w, "    %s:\n", key)
			for _, item := range v {
				fmt.Fprintf(w, "      - %s\n", item)
			}
		default:
			fmt.Fprintf(w, "    %s: %v\n", key, v)
		}
	}
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
