// Package main provides the check-debug-symbols command. It walks the given
// files and directories, and for every ELF PIE executable or shared object
// reports missing DWARF sections, missing FILE symbols and unexpected
// .gnu_debuglink sections.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/isseis/go-debuginfo-check/internal/config"
	"github.com/isseis/go-debuginfo-check/internal/debugcheck"
	"github.com/isseis/go-debuginfo-check/internal/logging"
	"github.com/isseis/go-debuginfo-check/internal/report"
	"github.com/isseis/go-debuginfo-check/internal/terminal"
	"github.com/isseis/go-debuginfo-check/internal/toolexec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	runnerFactory = func(timeout time.Duration, logger *slog.Logger) toolexec.Runner {
		return toolexec.NewDefaultRunner(timeout, logger)
	}
	detectTerminal = terminal.Detect
)

// cliOptions holds the command-line flags.
type cliOptions struct {
	verbose     bool
	configPath  string
	exclude     []string
	logLevel    string
	logFile     string
	progress    bool
	prefilter   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runContext(ctx, args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	cmd := newRootCmd(stdout, stderr, func(code int) { exitCode = code })
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, setExitCode func(int)) *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "check-debug-symbols [flags] [path...]",
		Short: "Check ELF objects for complete debug information",
		Long: `Check that every ELF PIE executable and shared object under the given
paths carries .debug_info and .debug_abbrev sections and FILE symbols, and
has no .gnu_debuglink section. Directories are searched recursively.

Paths that begin with "-" must follow "--", which ends flag parsing:

  check-debug-symbols -v -- -lib

Exits with status 1 if any object fails a check.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			code, err := check(cmd.Context(), cmd.Flags(), &opts, paths, stdout, stderr)
			if err != nil {
				return err
			}
			setExitCode(code)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	registerFlags(cmd.Flags(), &opts)

	return cmd
}

func registerFlags(flags *pflag.FlagSet, opts *cliOptions) {
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Also print OK lines for objects that pass")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML configuration file")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "Glob of paths to skip below a directory (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", string(config.DefaultLogLevel), "Log level on stderr (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file")
	flags.BoolVar(&opts.progress, "progress", false, "Show a spinner on stderr while scanning (terminals only)")
	flags.BoolVar(&opts.prefilter, "prefilter", false, "Skip the file-type tool for files without an ELF header")
}

// loadConfig reads the configuration file, if any, and applies flags that
// were given explicitly on top of it.
func loadConfig(flags *pflag.FlagSet, opts *cliOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Log.Level = level
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.prefilter {
		cfg.Scan.Prefilter = true
	}
	cfg.Scan.Exclude = append(cfg.Scan.Exclude, opts.exclude...)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// check scans every path and prints the report. It returns the exit code,
// or an error if the run had to be aborted; nothing is printed on stdout in
// that case.
func check(ctx context.Context, flags *pflag.FlagSet, opts *cliOptions, paths []string, stdout, stderr io.Writer) (int, error) {
	cfg, err := loadConfig(flags, opts)
	if err != nil {
		return 1, err
	}

	caps := detectTerminal(stderr)
	runID := logging.NewRunID()
	logger, closeLog, err := logging.Setup(logging.Options{
		Level:        cfg.Log.Level.ToSlogLevel(),
		Console:      stderr,
		Capabilities: caps,
		FilePath:     cfg.Log.File,
		RunID:        runID,
	})
	if err != nil {
		return 1, err
	}
	defer func() {
		if err := closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}()

	excluder, err := debugcheck.NewExcluder(cfg.Scan.Exclude)
	if err != nil {
		return 1, err
	}

	tools := cfg.DebugTools()
	runner := runnerFactory(cfg.ToolTimeout(), logger)

	var classifierOpts []debugcheck.ClassifierOption
	if cfg.PrefilterEnabled() {
		classifierOpts = append(classifierOpts, debugcheck.WithPrefilter(debugcheck.MagicSniffer{}))
	}

	observer := &runObserver{}
	if opts.progress && caps.Interactive {
		observer.bar = newProgressBar(stderr)
	}

	walker := debugcheck.NewWalker(
		debugcheck.NewClassifier(runner, tools.FileType, classifierOpts...),
		debugcheck.NewScanner(runner, tools.Readelf),
		debugcheck.WithExcluder(excluder),
		debugcheck.WithObserver(observer),
		debugcheck.WithLogger(logger),
	)

	logger.Debug("Starting scan",
		"paths", paths,
		"file_type_tool", tools.FileType,
		"readelf_tool", tools.Readelf,
		"exclude", excluder.Patterns(),
		"prefilter", cfg.PrefilterEnabled())

	start := time.Now()
	var results []debugcheck.ScanResult
	for _, path := range paths {
		found, err := walker.Scan(ctx, path)
		if err != nil {
			observer.finish()
			return 1, err
		}
		results = append(results, found...)
	}
	observer.finish()

	summary := report.Summarize(results)
	attrs := append(summary.LogAttrs(),
		"files_visited", observer.visited,
		"excluded", observer.excluded,
		"elf_size", humanize.Bytes(uint64(observer.elfBytes)), // #nosec G115 - sizes are never negative
		"elapsed", time.Since(start))
	logger.Info("Scan finished", attrs...)

	if err := report.PrintScanResults(stdout, results, opts.verbose); err != nil {
		return 1, fmt.Errorf("failed to write report: %w", err)
	}

	if report.HasFailures(results) {
		return 1, nil
	}
	return 0, nil
}
