package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/movies"
	"github.com/s0up4200/marquee/tmdb"
)

var seedTitle string

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show details and similar titles for a movie",
	Long: `Fetch the details of a movie together with a list of similar movies.
Both requests run in parallel and the screen is only shown once both succeed.`,
	Args: cobra.ExactArgs(1),
	RunE: runMovie,
}

func init() {
	movieCmd.Flags().StringVarP(&seedTitle, "title", "t", "", "title to show while loading")
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid movie id %q", args[0])
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	out := cmd.OutOrStdout()
	formatter := movies.NewConsoleFormatter()

	unit := movies.NewDetail(tmdbClient, tmdb.Movie{ID: id, Title: seedTitle}, coordinatorOptions()...)
	state, err := await(ctx, unit, func(s movies.DetailState) {
		fmt.Fprint(out, formatter.FormatSkeleton(s.Seed))
	})
	if err != nil {
		return err
	}

	fmt.Fprint(out, formatter.FormatDetail(state.Result, formatOptions()))
	return nil
}
