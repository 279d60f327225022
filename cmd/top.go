package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/movies"
)

var (
	filterExpr string
	preset     string
	page       int
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List top rated movies",
	Long: `List one page of TMDB's top rated movies, optionally narrowed down by a
filter expression or a preset from the config file.

Examples:
  marquee top --filter 'Rating >= 8.5'
  marquee top --filter 'hasGenre(16) and Year > 2000' --page 2
  marquee top --preset classics`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	topCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	topCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	topCmd.Flags().IntVar(&page, "page", 1, "page of the top rated list to fetch")
	topCmd.MarkFlagsMutuallyExclusive("filter", "preset")
}

func runTop(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	// Compile before fetching so a typo fails fast
	filter, err := resolveFilter(expr)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	out := cmd.OutOrStdout()
	unit := movies.NewTopRated(tmdbClient, page, coordinatorOptions()...)
	state, err := await(ctx, unit, func(movies.TopRatedState) {
		fmt.Fprintln(out, "Loading top rated movies...")
	})
	if err != nil {
		return err
	}

	list := movies.List(state)
	heading := fmt.Sprintf("Top rated, page %d", page)
	if filter != nil {
		list, err = filter.Apply(list)
		if err != nil {
			return err
		}
		heading = fmt.Sprintf("%s matching %q", heading, expr)
	}

	fmt.Fprint(out, movies.NewConsoleFormatter().FormatMovieList(heading, list, formatOptions()))
	return nil
}

// getFilterExpression determines the filter expression to use.
// An empty expression means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter.Preset(preset); ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}

// resolveFilter compiles expr through the shared compiler. An empty
// expression yields a nil filter.
func resolveFilter(expr string) (*movies.Filter, error) {
	if expr == "" {
		return nil, nil
	}
	if filters == nil {
		filters = movies.NewCompiler(filterCacheSize)
	}

	filter, err := filters.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", expr).Int("cached_filters", filters.Size()).Msg("Filtering top rated movies")
	return filter, nil
}
