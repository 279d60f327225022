package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build information injected through ldflags
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "marquee %s (built %s)\n", version, buildTime)
	},
}

// userAgent appends the version to the bare default agent
func userAgent(configured string) string {
	if configured == "marquee" {
		return fmt.Sprintf("marquee/%s", version)
	}
	return configured
}
