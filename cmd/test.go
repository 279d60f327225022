package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the connection to the TMDB API and display the active configuration.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to TMDB at %s...\n", tmdbClient.BaseURL())

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	if err := tmdbClient.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	fmt.Fprintf(out, "\nConfiguration:\n")
	fmt.Fprintf(out, "- Timeout: %s\n", cfg.TMDB.Timeout)
	if cfg.TMDB.RateLimit.RPS > 0 {
		fmt.Fprintf(out, "- Rate limit: %.0f req/s (burst %d)\n", cfg.TMDB.RateLimit.RPS, cfg.TMDB.RateLimit.Burst)
	} else {
		fmt.Fprintln(out, "- Rate limit: Disabled")
	}
	fmt.Fprintf(out, "- Show details: %s\n", boolToStatus(cfg.Display.ShowDetails))

	if len(cfg.Filter.Presets) > 0 {
		fmt.Fprintf(out, "\nFilter presets:\n")
		for name, expression := range cfg.Filter.Presets {
			fmt.Fprintf(out, "  • %s: %s\n", name, expression)
		}
	}

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
