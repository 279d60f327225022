package movies

import (
	"context"

	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

// Detail is everything the movie detail screen needs once loaded
type Detail struct {
	Details tmdb.MovieDetails
	Similar tmdb.SimilarMovies
}

// DetailState is the state published for a movie detail screen
type DetailState = fetch.State[tmdb.Movie, Detail]

// DetailCoordinator drives the movie detail screen
type DetailCoordinator = fetch.Coordinator[tmdb.Movie, Detail]

// NewDetail creates the unit of work for movie's detail screen. The movie
// already known to the caller is the seed, so a skeleton can be rendered
// while the details and similar titles are fetched in parallel.
func NewDetail(client *tmdb.Client, movie tmdb.Movie, opts ...fetch.Option) *DetailCoordinator {
	opts = append([]fetch.Option{fetch.WithName("movie_detail")}, opts...)
	return fetch.New(movie, fetchDetail(client, movie), opts...)
}

func fetchDetail(client *tmdb.Client, movie tmdb.Movie) fetch.FetchFunc[Detail] {
	return func(ctx context.Context) (Detail, error) {
		pair, err := fetch.Join2(ctx,
			func(ctx context.Context) (tmdb.MovieDetails, error) {
				return tmdb.Execute(ctx, client, tmdb.Details(movie))
			},
			func(ctx context.Context) (tmdb.SimilarMovies, error) {
				return tmdb.Execute(ctx, client, tmdb.Similar(movie))
			},
		)
		if err != nil {
			return Detail{}, err
		}
		return Detail{Details: pair.First, Similar: pair.Second}, nil
	}
}

// Title returns the title to show for s: the seed title while loading, the
// fetched title once loaded, and nothing on error.
func Title(s DetailState) string {
	switch s.Phase {
	case fetch.PhaseLoading:
		return s.Seed.Title
	case fetch.PhaseLoaded:
		return s.Result.Details.Title
	default:
		return ""
	}
}
