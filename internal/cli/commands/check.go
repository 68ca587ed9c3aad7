package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/check"
	"github.com/leapstack-labs/epochscript/internal/cli/config"
	"github.com/leapstack-labs/epochscript/internal/cli/output"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Jobs       int      // Parallel parses
	Extensions []string // Script file extensions
	Quiet      bool     // Only print failures
}

// checkOutput is the structured form of a check run.
type checkOutput struct {
	Results []check.Result `json:"results" yaml:"results"`
	Summary check.Summary  `json:"summary" yaml:"summary"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse every script under the given paths",
		Long: `Parse every script file under the given files and directories and
report each failure with its file, line and column.

Directories are searched recursively for files with a configured
extension (default .eps); hidden directories are skipped. Files are
parsed in parallel. The command exits non-zero when any script fails.`,
		Example: `  # Check the current directory
  epochscript check

  # Check two directories with 4 workers
  epochscript check strategies/ indicators/ -j 4

  # Only show failures, as JSON
  epochscript check -q -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of scripts parsed in parallel (default: number of CPUs)")
	cmd.Flags().StringSliceVar(&opts.Extensions, "extensions", nil, "Script file extensions (default: .eps)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only report scripts that fail")

	return cmd
}

// applyConfig fills options not set on the command line from cfg.
func (o *CheckOptions) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("jobs") {
		o.Jobs = cfg.Jobs
	}
	if !cmd.Flags().Changed("extensions") {
		o.Extensions = cfg.Extensions
	}
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	opts.applyConfig(cmd, cmdCtx.Cfg)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := check.Discover(paths, opts.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Warning(fmt.Sprintf("no scripts found (extensions: %v)", opts.Extensions))
		return nil
	}
	cmdCtx.Logger.Debug("checking scripts", "files", len(files), "jobs", opts.Jobs)

	results, err := check.Run(cmd.Context(), files, check.Options{
		Jobs:   opts.Jobs,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	summary := check.Summarize(results)
	if err := renderCheckResults(r, results, summary, opts.Quiet); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d scripts failed to parse: %w", summary.Failed, summary.Files, ErrCheckFailed)
	}
	return nil
}

func renderCheckResults(r *output.Renderer, results []check.Result, summary check.Summary, quiet bool) error {
	if quiet {
		failed := make([]check.Result, 0, summary.Failed)
		for _, res := range results {
			if !res.OK {
				failed = append(failed, res)
			}
		}
		results = failed
	}

	if ok, err := r.Structured(checkOutput{Results: results, Summary: summary}); ok {
		return err
	}

	styles := r.Styles()
	for _, res := range results {
		if res.OK {
			r.StatusLine(true, res.Path, fmt.Sprintf("%d statements", res.Statements))
			continue
		}
		r.StatusLine(false, res.Path, "")
		if res.Source == "" && res.Line == 0 {
			r.Printf("    %s\n", styles.Error.Render(res.Message))
			continue
		}
		writeParseError(r.Writer(), styles, res.Path, res.Source, res.Err)
	}

	line := fmt.Sprintf("Checked %d scripts: %d passed, %d failed", summary.Files, summary.Passed, summary.Failed)
	if summary.Failed > 0 {
		r.Println(styles.Error.Render(line))
	} else {
		r.Success(line)
	}
	return nil
}
