package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nate-a11y/AED-Empire/internal/harness"
)

// SimulateResult holds a scenario run for JSON output.
type SimulateResult struct {
	Scenario string   `json:"scenario"`
	Trace    []string `json:"trace"`
	Drawer   string   `json:"drawer_html"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run a scripted storefront scenario",
		Long: `Run a scripted storefront scenario against the headless UI runtime.

The scenario drives user actions and controls network delivery order; the
output is the observable-state trace plus the final cart drawer markup.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(rootOpts, args[0], cmd)
		},
	}
}

func runSimulate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	formatter.VerboseLog("Running scenario %q (%d steps)", scenario.Name, len(scenario.Steps))

	result, err := harness.Run(scenario)
	if err != nil {
		_ = formatter.Error("E002", err.Error(), nil)
		return WrapExitError(ExitFailure, "scenario failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(SimulateResult{
			Scenario: scenario.Name,
			Trace:    result.Trace,
			Drawer:   result.DrawerHTML,
		})
	}

	fmt.Fprint(formatter.Writer, result.Text())
	return nil
}
