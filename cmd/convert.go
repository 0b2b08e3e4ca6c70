// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → sidecar → download → assemble → write.
//
// It resolves the configuration (file, .env, environment, flags) and hands
// it to the pipeline.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aimerneige/telegraph2pdf/config"
	"github.com/aimerneige/telegraph2pdf/core/pipeline"
	"github.com/aimerneige/telegraph2pdf/logger"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagConfig     string
	flagBaseURL    string
	flagCacheDir   string
	flagOutputDir  string
	flagSidecarDir string
	flagClearCache bool
	flagHashNames  bool
	flagMarkdown   bool
	flagDPI        float64
	flagTimeout    string
	flagUserAgent  string
	flagLogLevel   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [slug-or-url]...",
	Short: "Convert Telegraph articles to PDF",
	Long: `Convert fetches each article, writes its metadata to a JSON sidecar,
downloads the images into the cache directory and merges them into a PDF.

An article whose sidecar already exists is not fetched again; its record is
loaded from the sidecar instead. Images already in the cache are reused.

Slugs come from the arguments, or from the config file / TELEGRAPH2PDF_SLUGS
when no arguments are given.

Examples:
  telegraph2pdf convert Nukunuku-Mini-Holes-08-18
  telegraph2pdf convert https://telegra.ph/Nukunuku-Mini-Holes-08-18 --output_dir ./out
  telegraph2pdf convert --config telegraph2pdf.yaml --clear_cache`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")

	// Locations.
	convertCmd.Flags().StringVar(&flagBaseURL, "base_url", "", "Article site base URL (default https://telegra.ph)")
	convertCmd.Flags().StringVar(&flagCacheDir, "cache_dir", "", "Image cache directory (default ./cache)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory for PDFs (default: current directory)")
	convertCmd.Flags().StringVar(&flagSidecarDir, "sidecar_dir", "", "Directory for JSON sidecars (default: output directory)")

	// Behavior.
	convertCmd.Flags().BoolVar(&flagClearCache, "clear_cache", false, "Delete an article's cached images after its PDF is written")
	convertCmd.Flags().BoolVar(&flagHashNames, "hash_names", false, "Prefix cached file names with a URL hash to avoid collisions")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Also export the article text as Markdown")
	convertCmd.Flags().Float64Var(&flagDPI, "dpi", 0, "Resolution used to size PDF pages (default 100)")

	// HTTP and logging.
	convertCmd.Flags().StringVar(&flagTimeout, "timeout", "", "HTTP timeout, e.g. 30s")
	convertCmd.Flags().StringVar(&flagUserAgent, "user_agent", "", "HTTP User-Agent")
	convertCmd.Flags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := p.Run(ctx)
	for _, res := range results {
		fmt.Fprintf(os.Stdout, "✓ Written: %s (%d pages)\n", res.DocumentPath, res.Pages)
	}
	return err
}

// resolveConfig layers defaults, the config file, .env / environment and
// finally the flags the user actually set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	config.LoadDotEnv()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base_url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("cache_dir") {
		cfg.CacheDir = flagCacheDir
	}
	if flags.Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("sidecar_dir") {
		cfg.SidecarDir = flagSidecarDir
	}
	if flags.Changed("clear_cache") {
		cfg.ClearCache = flagClearCache
	}
	if flags.Changed("hash_names") {
		cfg.HashNames = flagHashNames
	}
	if flags.Changed("markdown") {
		cfg.Markdown = flagMarkdown
	}
	if flags.Changed("dpi") {
		cfg.DPI = flagDPI
	}
	if flags.Changed("timeout") {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if flags.Changed("user_agent") {
		cfg.UserAgent = flagUserAgent
	}
	if flags.Changed("log_level") {
		cfg.LogLevel = flagLogLevel
	}

	if len(args) > 0 {
		cfg.Slugs = args
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
