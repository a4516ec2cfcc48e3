package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nate-a11y/AED-Empire/internal/settings"
)

// ValidationResult holds settings validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <settings.yaml>",
		Short: "Validate a theme settings file",
		Long: `Validate a theme settings file against the embedded schema.

Defaults are overlaid first, so a partial file validates as long as the
fields it sets are well-formed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("settings file not found: %s", path), nil)
		return WrapExitError(ExitCommandError, "settings file not found", err)
	}

	formatter.VerboseLog("Validating %s", path)

	if _, err := settings.Load(path); err != nil {
		if formatter.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, Errors: []string{err.Error()}})
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Validation failed")
			fmt.Fprintf(formatter.Writer, "  %v\n", err)
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ Settings valid")
	return nil
}
