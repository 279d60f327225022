package tmdb

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"
)

// Movie is a list entry as returned by the top rated and similar endpoints
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	Video            bool    `json:"video,omitempty"`
}

// Rating returns the vote average rounded to one decimal place
func (m Movie) Rating() float64 {
	return math.Round(m.VoteAverage*10) / 10
}

// Released parses the release date; the zero time is returned when it is missing or malformed
func (m Movie) Released() time.Time {
	t, err := time.Parse(time.DateOnly, m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the release year, or 0 when unknown
func (m Movie) Year() int {
	if t := m.Released(); !t.IsZero() {
		return t.Year()
	}
	return 0
}

// Genre is a named TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full record from /movie/{id}
type MovieDetails struct {
	ID           int64   `json:"id"`
	IMDbID       string  `json:"imdb_id,omitempty"`
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	Status       string  `json:"status,omitempty"`
	Homepage     string  `json:"homepage,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count,omitempty"`
}

// Page is a paginated list response
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// HasMorePages checks if there are more pages after this one
func (p Page[T]) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// NextPage returns the next page number, or an error if there are no more pages
func (p Page[T]) NextPage() (int, error) {
	if !p.HasMorePages() {
		return 0, fmt.Errorf("no more pages available")
	}
	return p.Page + 1, nil
}

// SimilarMovies is the response of /movie/{id}/similar
type SimilarMovies = Page[Movie]

// ConfigurationInfo is the subset of /configuration used for connectivity checks
type ConfigurationInfo struct {
	Images struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// TopRated requests a page of the top rated movie list. page <= 0 leaves the
// choice to the API, which returns the first page.
func TopRated(page int) Request[Page[Movie]] {
	var q url.Values
	if page > 0 {
		q = url.Values{"page": {strconv.Itoa(page)}}
	}
	return Get[Page[Movie]]("/movie/top_rated", q)
}

// Details requests the full record of m
func Details(m Movie) Request[MovieDetails] {
	return Get[MovieDetails](fmt.Sprintf("/movie/%d", m.ID), nil)
}

// Similar requests movies similar to m
func Similar(m Movie) Request[SimilarMovies] {
	return Get[SimilarMovies](fmt.Sprintf("/movie/%d/similar", m.ID), nil)
}

// Configuration requests the API configuration
func Configuration() Request[ConfigurationInfo] {
	return Get[ConfigurationInfo]("/configuration", nil)
}
