package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/movies"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	filters    *movies.Compiler

	// Command flags
	showDetails bool
)

// filterCacheSize bounds the compiled expressions kept by filters
const filterCacheSize = 32

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse top rated movies from TMDB in your terminal",
	Long: `marquee is a CLI tool that fetches movie lists and movie details from
The Movie Database (TMDB). Lists can be narrowed down with filter expressions
such as 'Rating >= 8.5 and Year < 1980'.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show ratings and overviews")

	// Add subcommands
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override show_details from command line if specified
	if cmd.Flags().Changed("details") {
		cfg.Display.ShowDetails = showDetails
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithUserAgent(userAgent(cfg.TMDB.UserAgent)),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit.RPS, cfg.TMDB.RateLimit.Burst),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	// Presets are compiled up front so a broken one is reported before it is used
	filters = movies.NewCompiler(filterCacheSize)
	for name, expression := range cfg.Filter.Presets {
		if _, err := filters.Compile(expression); err != nil {
			logger.Warn().Err(err).Str("preset", name).Msg("Invalid filter preset")
		}
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no colour when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// coordinatorOptions wires the CLI logger into a unit of work
func coordinatorOptions() []fetch.Option {
	return []fetch.Option{fetch.WithLogger(logger)}
}

func formatOptions() movies.FormatOptions {
	return movies.FormatOptions{
		ShowDetails:   cfg.Display.ShowDetails,
		OverviewWidth: cfg.Display.OverviewWidth,
	}
}
