package tmdb

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovie(t *testing.T) {
	t.Run("Rating", func(t *testing.T) {
		tests := []struct {
			avg      float64
			expected float64
		}{
			{8.438, 8.4},
			{8.46, 8.5},
			{7, 7},
			{0, 0},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, Movie{VoteAverage: tt.avg}.Rating())
		}
	})

	t.Run("Year", func(t *testing.T) {
		assert.Equal(t, 1999, Movie{ReleaseDate: "1999-10-15"}.Year())
		assert.Equal(t, 0, Movie{ReleaseDate: ""}.Year())
		assert.Equal(t, 0, Movie{ReleaseDate: "soon"}.Year())
	})
}

func TestPage(t *testing.T) {
	var page SimilarMovies
	body := `{"page":2,"results":[{"id":1,"title":"One"},{"id":2,"title":"Two"}],"total_pages":5,"total_results":100}`
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	assert.Len(t, page.Results, 2)
	assert.Equal(t, "Two", page.Results[1].Title)
	assert.True(t, page.HasMorePages())

	next, err := page.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	page.Page = 5
	assert.False(t, page.HasMorePages())
	_, err = page.NextPage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no more pages")
}

func TestRequest(t *testing.T) {
	req := Get[Movie]("movie/1", nil)
	assert.Equal(t, MethodGet, req.Method())
	assert.Equal(t, "/movie/1", req.Path())

	q := TopRated(2).Query()
	q.Set("page", "9")
	assert.Equal(t, "2", TopRated(2).Query().Get("page"), "descriptor query must not be mutable from outside")

	var zero Request[Movie]
	assert.Equal(t, MethodGet, zero.Method())
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "decoding", KindDecoding.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())

	err := &Error{Kind: KindDecoding, Op: "GET", Path: "/movie/1", Err: errors.New("boom")}
	assert.ErrorIs(t, err, ErrDecoding)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, "tmdb GET /movie/1: decoding error: boom", err.Error())

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		code         int
		notFound     bool
		unauthorized bool
	}{
		{401, false, true},
		{403, false, true},
		{404, true, false},
		{500, false, false},
	}

	for _, tt := range tests {
		err := &StatusError{StatusCode: tt.code}
		assert.Equal(t, tt.notFound, err.IsNotFound())
		assert.Equal(t, tt.unauthorized, err.IsUnauthorized())
	}
}
