package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/check"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	DebounceMS int
	Extensions []string
	Jobs       int
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-check scripts whenever they change",
		Long: `Check every script under the given directories, then keep watching
them and re-check each script that is written or created.

Bursts of file events are coalesced; a check runs once the files have
been quiet for the debounce interval. Press Ctrl+C to stop.`,
		Example: `  # Watch the current directory
  epochscript watch

  # Watch a directory with a longer debounce
  epochscript watch strategies/ --debounce 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.DebounceMS, "debounce", 0, "Milliseconds of quiet before re-checking (default: 100)")
	cmd.Flags().StringSliceVar(&opts.Extensions, "extensions", nil, "Script file extensions (default: .eps)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of scripts parsed in parallel (default: number of CPUs)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	debounce := cfg.Watch.Debounce()
	if cmd.Flags().Changed("debounce") {
		debounce = time.Duration(opts.DebounceMS) * time.Millisecond
	}
	exts := cfg.Extensions
	if cmd.Flags().Changed("extensions") {
		exts = opts.Extensions
	}
	jobs := cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = opts.Jobs
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recheck := func(ctx context.Context, files []string) {
		results, err := check.Run(ctx, files, check.Options{Jobs: jobs, Logger: logger})
		if err != nil {
			return
		}
		if err := renderCheckResults(r, results, check.Summarize(results), false); err != nil {
			logger.Warn("failed to render results", "error", err)
		}
	}

	// Initial check
	files, err := check.Discover(roots, exts)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		recheck(ctx, files)
	}

	r.Muted(fmt.Sprintf("Watching %v for changes (Ctrl+C to stop)", roots))

	w := &check.Watcher{
		Roots:      roots,
		Extensions: exts,
		Debounce:   debounce,
		Logger:     logger,
		OnChange: func(ctx context.Context, files []string) {
			r.Println("")
			r.Header(fmt.Sprintf("%s  %d changed", time.Now().Format(time.TimeOnly), len(files)))
			recheck(ctx, files)
		},
	}
	return w.Run(ctx)
}
