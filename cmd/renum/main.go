package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nsedgwick/renum/internal/config"
	"github.com/nsedgwick/renum/internal/event"
	"github.com/nsedgwick/renum/internal/rename"
	"github.com/nsedgwick/renum/internal/stats"
	"github.com/nsedgwick/renum/internal/ui"
	"github.com/nsedgwick/renum/internal/ui/tui"
)

var version = "dev"

var shiftPattern = regexp.MustCompile(`^-?[0-9]+$`)

// usageError marks argument errors so main prints help text alongside
// the message. Runtime errors (no matches, filesystem trouble) get the
// message only.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// parseShift validates and parses the shift argument. The shift itself
// must fit in 32-bit signed range, same as the shifted integers it
// produces.
func parseShift(s string) (int64, error) {
	if !shiftPattern.MatchString(s) {
		return 0, fmt.Errorf("shift %q must be a signed integer", s)
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("shift %q out of 32-bit range", s)
	}
	return n, nil
}

func main() {
	os.Exit(run())
}

//nolint:gocyclo // main CLI entry point orchestrates all flag parsing and mode selection
func run() int {
	var (
		verbose     bool
		quiet       bool
		dryRun      bool
		noProgress  bool
		tuiFlag     bool
		showVersion bool
		stagePrefix string
		logFile     string
	)

	rootCmd := &cobra.Command{
		Use:   "renum [flags] <pattern> <shift>",
		Short: "Renumber file sequences by shifting the trailing integer in each filename",
		Long: `renum renames every file matched by a glob pattern by adding a signed
integer offset to the trailing number in its filename (before the
extension). Renames go through a staging name, so shifted names may
freely overlap the original set:

  renum 'file[0-9]*.txt' 1     # file1.txt file2.txt -> file2.txt file3.txt
  renum 'take*.wav' -10        # take15.wav -> take5.wav`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "renum %s\n", version)
				return nil
			}

			pattern := args[0]
			shift, err := parseShift(args[1])
			if err != nil {
				return &usageError{err: err}
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &verbose, &noProgress, &tuiFlag, &stagePrefix)

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			if dryRun {
				slog.Info("dry run mode")
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine
			// that writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.String("target", ev.Target),
							slog.Int("phase", ev.Phase),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "renum.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			// Create presenter.
			isTTY := ui.IsTTY(os.Stderr.Fd())
			var presenter ui.Presenter
			if tuiFlag && isTTY {
				presenter = tui.NewPresenter(tui.Config{
					Stats:   collector,
					Pattern: pattern,
					Shift:   shift,
					Theme:   cfg.Theme,
				})
			} else {
				if tuiFlag {
					slog.Warn("--tui requires a terminal, falling back to inline output")
				}
				presenter = ui.NewPresenter(ui.Config{
					Writer:     os.Stdout,
					ErrWriter:  os.Stderr,
					IsTTY:      isTTY,
					Quiet:      quiet,
					Verbose:    verbose,
					NoProgress: noProgress,
					Stats:      collector,
				})
			}

			runCfg := rename.Config{
				Pattern:     pattern,
				Shift:       shift,
				StagePrefix: stagePrefix,
				DryRun:      dryRun,
				Events:      events,
				Stats:       collector,
			}

			slog.Debug("starting rename",
				"pattern", pattern,
				"shift", shift,
				"prefix", stagePrefix,
				"dry_run", dryRun,
			)

			useTUI := tuiFlag && isTTY
			var result rename.Result

			if useTUI {
				// TUI mode: run engine in background, TUI in foreground.
				// Bubble Tea needs the foreground to capture stdin properly.
				engineCtx, engineCancel := context.WithCancel(ctx)
				defer engineCancel()

				var engineWg sync.WaitGroup
				engineWg.Add(1)
				go func() {
					defer engineWg.Done()
					result = rename.Run(engineCtx, runCfg)
					close(events)
				}()

				// TUI runs in foreground — blocks until user quits.
				_ = presenter.Run(presenterEvents) //nolint:errcheck // presenter error is non-fatal

				// User quit the TUI — cancel the engine if still running
				// and drain any events it emits while winding down.
				engineCancel()
				go func() {
					for range presenterEvents { //nolint:revive // draining
					}
				}()
				engineWg.Wait()
				stop()
			} else {
				// Inline mode: run presenter in background, engine in foreground.
				var presenterErr error
				var presenterWg sync.WaitGroup
				presenterWg.Add(1)
				go func() {
					defer presenterWg.Done()
					presenterErr = presenter.Run(presenterEvents)
				}()

				result = rename.Run(ctx, runCfg)
				stop()
				close(events)
				presenterWg.Wait()
				if presenterErr != nil {
					fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
				}
			}

			if result.Err != nil {
				// Aborted before any rename: zero matches, bad pattern,
				// or interrupt.
				return result.Err
			}

			if !quiet {
				summary := presenter.Summary()
				if summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			// Per-entry skips and failures are reported inline and do
			// not fail the run.
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each file instead of drawing a progress bar")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be renamed without touching files")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress display")
	rootCmd.Flags().BoolVar(&tuiFlag, "tui", false, "full-screen TUI (Bubble Tea) for large batches")
	rootCmd.Flags().StringVar(&stagePrefix, "stage-prefix", rename.DefaultStagePrefix, "prefix for staging names")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	// Unknown flags are argument errors: report with usage, exit 1.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		return 1
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	verbose *bool,
	noProgress *bool,
	tuiFlag *bool,
	stagePrefix *string,
) {
	if !cmd.Flags().Changed("verbose") && defaults.Verbose != nil {
		*verbose = *defaults.Verbose
	}
	if !cmd.Flags().Changed("no-progress") && defaults.NoProgress != nil {
		*noProgress = *defaults.NoProgress
	}
	if !cmd.Flags().Changed("tui") && defaults.TUI != nil {
		*tuiFlag = *defaults.TUI
	}
	if !cmd.Flags().Changed("stage-prefix") && defaults.StagePrefix != nil {
		*stagePrefix = *defaults.StagePrefix
	}
}
