package movies

import (
	"fmt"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	// OverviewWidth truncates overviews; 0 means no limit
	OverviewWidth int
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a list of movies under heading
func (f *ConsoleFormatter) FormatMovieList(heading string, movies []tmdb.Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", heading, len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, movie, isLast, options)
	}

	return sb.String()
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie tmdb.Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s\n", prefix, titleWithYear(movie.Title, movie.Year()))

	if !options.ShowDetails {
		return
	}

	fmt.Fprintf(sb, "%sRating: %.1f (%d votes)\n", indent, movie.Rating(), movie.VoteCount)
	if movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Overview, options.OverviewWidth))
	}
}

// FormatSkeleton formats the placeholder shown while a detail screen loads
func (f *ConsoleFormatter) FormatSkeleton(seed tmdb.Movie) string {
	title := seed.Title
	if title == "" {
		title = fmt.Sprintf("movie %d", seed.ID)
	}
	return fmt.Sprintf("Loading %s...\n", title)
}

// FormatDetail formats a loaded detail screen
func (f *ConsoleFormatter) FormatDetail(detail Detail, options FormatOptions) string {
	d := detail.Details
	var sb strings.Builder

	year := tmdb.Movie{ReleaseDate: d.ReleaseDate}.Year()
	fmt.Fprintf(&sb, "\n%s\n", titleWithYear(d.Title, year))
	if d.Tagline != "" {
		fmt.Fprintf(&sb, "%q\n", d.Tagline)
	}

	var facts []string
	facts = append(facts, fmt.Sprintf("Rating: %.1f", tmdb.Movie{VoteAverage: d.VoteAverage}.Rating()))
	if d.Runtime > 0 {
		facts = append(facts, fmt.Sprintf("Runtime: %d min", d.Runtime))
	}
	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		facts = append(facts, "Genres: "+strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "%s\n", strings.Join(facts, " | "))

	if d.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", d.Overview)
	}

	similar := detail.Similar
	heading := "Similar movies"
	if similar.TotalPages > 1 {
		heading = fmt.Sprintf("Similar movies, page %d of %d", similar.Page, similar.TotalPages)
	}
	sb.WriteString(f.FormatMovieList(heading, similar.Results, options))

	return sb.String()
}

func titleWithYear(title string, year int) string {
	if year == 0 {
		return title
	}
	return fmt.Sprintf("%s (%d)", title, year)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
