package movies

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/tmdb"
)

// Filter is a compiled movie predicate such as `Rating >= 8.5 and Year < 1980`
type Filter struct {
	program *vm.Program
	expr    string
}

// CompileFilter compiles a filter expression
func CompileFilter(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(movieEnv(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &Filter{program: program, expr: expression}, nil
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expr
}

// Evaluate checks if a movie matches the filter
func (f *Filter) Evaluate(movie tmdb.Movie) (bool, error) {
	out, err := expr.Run(f.program, movieEnv(movie))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, MovieTitle: movie.Title, Err: err}
	}
	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expr, MovieTitle: movie.Title, Err: fmt.Errorf("result is %T, not bool", out)}
	}
	return matched, nil
}

// Apply returns the movies matching the filter, in their original order
func (f *Filter) Apply(movies []tmdb.Movie) ([]tmdb.Movie, error) {
	var matches []tmdb.Movie
	for _, movie := range movies {
		ok, err := f.Evaluate(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, movie)
		}
	}
	return matches, nil
}

// movieEnv exposes a movie and the helper functions to expressions
func movieEnv(movie tmdb.Movie) map[string]any {
	return map[string]any{
		"Movie":       movie,
		"ID":          movie.ID,
		"Title":       movie.Title,
		"Overview":    movie.Overview,
		"Language":    movie.OriginalLanguage,
		"Year":        movie.Year(),
		"Rating":      movie.Rating(),
		"VoteAverage": movie.VoteAverage,
		"VoteCount":   movie.VoteCount,
		"Popularity":  movie.Popularity,
		"Adult":       movie.Adult,

		"hasGenre": func(id int) bool {
			return slices.Contains(movie.GenreIDs, id)
		},
		"yearsAgo": func(years int) int {
			return time.Now().Year() - years
		},
		// Case-insensitive text helpers. The case-sensitive forms are the
		// operators `contains`, `startsWith` and `endsWith`.
		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWithText": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWithText": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}
}

// Compiler compiles filter expressions, keeping recently used ones
type Compiler struct {
	cache *lruCache[*Filter]
}

// NewCompiler creates a compiler remembering up to size expressions
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = 32
	}
	return &Compiler{cache: newLRUCache[*Filter](size)}
}

// Compile returns the cached filter for expression, compiling it on first use
func (c *Compiler) Compile(expression string) (*Filter, error) {
	if f, ok := c.cache.Get(expression); ok {
		return f, nil
	}

	f, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	c.cache.Put(expression, f)
	return f, nil
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	return c.cache.Size()
}
