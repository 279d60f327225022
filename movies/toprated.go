package movies

import (
	"context"

	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

// TopRatedState is the state published for the top rated list
type TopRatedState = fetch.State[struct{}, []tmdb.Movie]

// TopRatedCoordinator drives the top rated list
type TopRatedCoordinator = fetch.Coordinator[struct{}, []tmdb.Movie]

// NewTopRated creates the unit of work for one page of the top rated list.
// It has a single constituent, so no join is involved.
func NewTopRated(client *tmdb.Client, page int, opts ...fetch.Option) *TopRatedCoordinator {
	opts = append([]fetch.Option{fetch.WithName("top_rated")}, opts...)
	return fetch.New(struct{}{}, func(ctx context.Context) ([]tmdb.Movie, error) {
		resp, err := tmdb.Execute(ctx, client, tmdb.TopRated(page))
		if err != nil {
			return nil, err
		}
		return resp.Results, nil
	}, opts...)
}

// List returns the movies of a loaded state, and nothing otherwise
func List(s TopRatedState) []tmdb.Movie {
	if s.Phase != fetch.PhaseLoaded {
		return nil
	}
	return s.Result
}
