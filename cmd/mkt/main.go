package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/mkt/internal/config"
	"github.com/bamsammich/mkt/internal/engine"
	"github.com/bamsammich/mkt/internal/event"
	"github.com/bamsammich/mkt/internal/filter"
	"github.com/bamsammich/mkt/internal/stats"
	"github.com/bamsammich/mkt/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// announceFlag is a custom pflag.Value that preserves the CLI ordering of
// repeated --announce flags; tracker tier order is semantically significant.
type announceFlag struct {
	urls *[]string
}

func (*announceFlag) String() string { return "" }
func (*announceFlag) Type() string   { return "string" }

func (f *announceFlag) Set(val string) error {
	if val == "" {
		return errors.New("empty tracker URL")
	}
	*f.urls = append(*f.urls, val)
	return nil
}

// filterFlag is a custom pflag.Value that preserves CLI ordering of
// --exclude and --include rules by appending to a shared filter.Chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "string" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing
func run() int {
	var (
		output      string
		pieceLenKiB int64
		private     bool
		source      string
		rootPath    string
		noDate      bool
		noCreator   bool
		verbose     bool
		quiet       bool
		noProgress  bool
		logFile     string
		showVersion bool
		announce    []string
		filterFile  string
		minSizeStr  string
		maxSizeStr  string
	)
	chain := filter.NewChain()

	rootCmd := &cobra.Command{
		Use:   "mkt [flags] <path>...",
		Short: "Create BitTorrent metainfo files from local files and directories",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "mkt %s\n", version)
				return nil
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &pieceLenKiB, &private, &source, &announce)

			// Load filter file if specified.
			if filterFile != "" {
				if err := chain.LoadFile(filterFile); err != nil {
					return fmt.Errorf("load filter file: %w", err)
				}
			}

			// Parse size filters.
			if minSizeStr != "" {
				n, err := filter.ParseSize(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --min-size: %w", err)
				}
				chain.SetMinSize(n)
			}
			if maxSizeStr != "" {
				n, err := filter.ParseSize(maxSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --max-size: %w", err)
				}
				chain.SetMaxSize(n)
			}

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

			// Default output: torrent name next to the working directory.
			if output == "" {
				output = filepath.Base(filepath.Clean(args[0])) + ".torrent"
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine that
			// writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "mkt.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
			})

			slog.Debug("starting build",
				"inputs", args,
				"output", output,
				"piece_length_kib", pieceLenKiB,
				"trackers", len(announce),
				"private", private,
			)

			// Run presenter in background, pipeline in foreground.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(ctx, engine.Config{
				Inputs:      args,
				Root:        rootPath,
				Output:      output,
				PieceLength: pieceLenKiB * 1024,
				Announce:    announce,
				Private:     private,
				Source:      source,
				NoDate:      noDate,
				NoCreator:   noCreator,
				Version:     version,
				Filter:      chain,
				Events:      events,
				Stats:       collector,
			})
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet && result.Err == nil {
				summary := presenter.Summary()
				if summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				slog.Error("build failed", "error", result.Err)
				var cfgErr *engine.ConfigError
				if errors.As(result.Err, &cfgErr) {
					return &exitError{code: 2} // bad configuration
				}
				return &exitError{code: 1}
			}

			return nil
		},
	}

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output torrent path (default: <name>.torrent)")
	rootCmd.Flags().
		Int64VarP(&pieceLenKiB, "piece-length", "l", 256, "piece length in KiB (must be a power of two)")
	rootCmd.Flags().
		VarP(&announceFlag{urls: &announce}, "announce", "a", "tracker announce URL (repeatable, order preserved)")
	rootCmd.Flags().BoolVarP(&private, "private", "p", false, "mark the torrent private")
	rootCmd.Flags().StringVarP(&source, "source", "s", "", "source label stored in the info dict")
	rootCmd.Flags().StringVar(&rootPath, "root", "", "explicit torrent root (default: deepest common ancestor)")
	rootCmd.Flags().BoolVarP(&noDate, "no-date", "d", false, "omit the creation date")
	rootCmd.Flags().BoolVar(&noCreator, "no-created-by", false, "omit the created by field")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress display")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: false}, "exclude", "", "exclude files matching PATTERN (repeatable)")
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: true}, "include", "", "include files matching PATTERN (repeatable)")
	rootCmd.Flags().StringVar(&filterFile, "filter", "", "read filter rules from FILE")
	rootCmd.Flags().StringVar(&minSizeStr, "min-size", "", "skip files smaller than SIZE (e.g. 1M, 100K)")
	rootCmd.Flags().StringVar(&maxSizeStr, "max-size", "", "skip files larger than SIZE")

	rootCmd.AddCommand(docsCmd)

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "announce", "exclude", "include":
			f.NoOptDefVal = ""
		}
	})

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	pieceLenKiB *int64,
	private *bool,
	source *string,
	announce *[]string,
) {
	if !cmd.Flags().Changed("piece-length") && defaults.PieceLength != nil {
		*pieceLenKiB = *defaults.PieceLength
	}
	if !cmd.Flags().Changed("private") && defaults.Private != nil {
		*private = *defaults.Private
	}
	if !cmd.Flags().Changed("source") && defaults.Source != nil {
		*source = *defaults.Source
	}
	if !cmd.Flags().Changed("announce") && len(defaults.Announce) > 0 {
		*announce = append([]string(nil), defaults.Announce...)
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
