package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a constraint document without solving",
		Long: `Load a CUE constraint document (a file or a directory of .cue files)
and check it compiles and passes validation. All problems are reported,
not just the first.

Example:
  minededuce validate board.cue
  minededuce validate ./boards --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

// validateReport is the JSON payload for a successful validation.
type validateReport struct {
	Name  string `json:"name"`
	Rules int    `json:"rules"`
	Files int    `json:"files"`
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	loaded, errs := LoadConstraints(path, LoadModeCollectAll)
	if len(errs) > 0 {
		return reportLoadErrors(formatter, errs)
	}

	set := loaded.Set
	slog.Debug("document valid", "name", set.Name, "rules", len(set.Rules))

	report := validateReport{Name: set.Name, Rules: len(set.Rules), Files: loaded.FileCount}
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	return formatter.Success(fmt.Sprintf("%s: %d rule(s) across %d file(s), all valid", report.Name, report.Rules, report.Files))
}
