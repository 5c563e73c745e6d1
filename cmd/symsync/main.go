package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yuya-takeyama/symsync/internal/config"
	"github.com/yuya-takeyama/symsync/pkg/executor"
	"github.com/yuya-takeyama/symsync/pkg/fetcher"
	"github.com/yuya-takeyama/symsync/pkg/locator"
	"github.com/yuya-takeyama/symsync/pkg/logger"
	"github.com/yuya-takeyama/symsync/pkg/manifest"
	"github.com/yuya-takeyama/symsync/pkg/progress"
	"github.com/yuya-takeyama/symsync/pkg/report"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "symsync [flags] <Manifest>",
		Short: "Mirror debug symbols listed in a manifest from a symbol server",
		Long: `symsync downloads every component,hash entry of a manifest from the
symbol store named by a SRV*<local_root>*<remote_root> symbol path into
<local_root>/<component>/<hash>/<component>. Files already present locally
are skipped.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flags.String("symbol-path", "", "Symbol path of the form SRV*<local_root>*<remote_root>")
	flags.Int("concurrency", executor.DefaultConcurrency, "Number of concurrent downloads")
	flags.StringSlice("include", nil, "Only fetch components matching these patterns (multiple allowed)")
	flags.StringSlice("exclude", nil, "Skip components matching these patterns (multiple allowed)")
	flags.Bool("quiet", false, "Suppress non-error output")
	flags.Bool("no-progress", false, "Disable the progress bar")
	flags.Bool("strict", false, "Exit with an error when any download failed")
	flags.String("result-json-file", "", "Path to output result as JSON file")
	flags.String("user-agent", "", "User-Agent sent to HTTP symbol servers")
	flags.String("profile", "", "AWS profile to use for s3:// symbol stores")
	flags.String("region", "", "AWS region for s3:// symbol stores")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")

	for key, flag := range map[string]string{
		"symbol_path":      "symbol-path",
		"concurrency":      "concurrency",
		"include":          "include",
		"exclude":          "exclude",
		"quiet":            "quiet",
		"no_progress":      "no-progress",
		"strict":           "strict",
		"result_json_file": "result-json-file",
		"http.user_agent":  "user-agent",
		"aws.profile":      "profile",
		"aws.region":       "region",
		"logging.level":    "log-level",
		"logging.format":   "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return rootCmd
}

func run(ctx context.Context, cfg *config.Config, manifestPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Quiet)
	if err != nil {
		return err
	}
	defer log.Sync()

	loc, err := locator.ParseSingle(cfg.SymbolPath)
	if err != nil {
		return fmt.Errorf("failed to parse symbol path: %w", err)
	}

	if err := executor.PrepareLocalRoot(loc); err != nil {
		return err
	}

	lines, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	filter := manifest.Filter{Includes: cfg.Includes, Excludes: cfg.Excludes}
	lines, err = filter.Apply(lines)
	if err != nil {
		return fmt.Errorf("failed to apply filters: %w", err)
	}

	f, err := fetcher.ForRemote(ctx, loc.RemoteRoot, fetcher.Options{
		UserAgent: cfg.HTTP.UserAgent,
		Profile:   cfg.AWS.Profile,
		Region:    cfg.AWS.Region,
	})
	if err != nil {
		return err
	}

	log.Info("syncing symbols",
		zap.String("local", loc.LocalRoot),
		zap.String("remote", loc.RemoteRoot),
		zap.Int("entries", len(lines)),
		zap.Int("concurrency", cfg.Concurrency))

	var reporter progress.Reporter = progress.Nop{}
	var bar *progress.Bar
	if !cfg.Quiet && !cfg.NoProgress {
		bar = progress.NewBar(progress.Options{Total: len(lines)})
		bar.Start()
		reporter = bar
	}

	exec := executor.NewExecutor(f, reporter, log, cfg.Concurrency)
	result := exec.Execute(ctx, loc, lines)

	if bar != nil {
		bar.Finish()
	}

	for _, o := range result.Failures() {
		log.Error(o.Reason(), zap.String("line", o.Line))
	}

	if cfg.ResultJSONFile != "" {
		if err := result.WriteJSON(cfg.ResultJSONFile); err != nil {
			return fmt.Errorf("failed to write result JSON: %w", err)
		}
	}

	printSummary(cfg.Quiet, result.Summary(), time.Since(startTime))

	if cfg.Strict && result.Summary().Failed > 0 {
		return fmt.Errorf("%d downloads failed", result.Summary().Failed)
	}

	return nil
}

func printSummary(quiet bool, s report.Summary, duration time.Duration) {
	if quiet && s.Failed == 0 {
		return
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Downloaded: %d files (%s)\n", s.Success, humanize.Bytes(uint64(s.Bytes)))
	fmt.Printf("Skipped: %d files\n", s.Skipped)
	if s.Failed > 0 {
		fmt.Printf("Failed: %d\n", s.Failed)
	}
	fmt.Printf("Duration: %s\n", duration.Round(time.Millisecond))
}
