// Package catalog filters and orders fetched movies for display.
package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/reel/internal/tmdb"
)

// Sort names an ordering. The names match the catalog's sort_by values.
type Sort string

const (
	SortNone           Sort = ""
	SortPopularityDesc Sort = "popularity.desc"
	SortPopularityAsc  Sort = "popularity.asc"
	SortScoreDesc      Sort = "vote_average.desc"
	SortScoreAsc       Sort = "vote_average.asc"
	SortReleaseDesc    Sort = "release_date.desc"
	SortReleaseAsc     Sort = "release_date.asc"
)

var sortOrder = []Sort{
	SortNone,
	SortPopularityDesc,
	SortPopularityAsc,
	SortScoreDesc,
	SortScoreAsc,
	SortReleaseDesc,
	SortReleaseAsc,
}

var comparators = map[Sort]func(a, b tmdb.Movie) int{
	SortPopularityDesc: func(a, b tmdb.Movie) int { return cmp.Compare(b.Popularity, a.Popularity) },
	SortPopularityAsc:  func(a, b tmdb.Movie) int { return cmp.Compare(a.Popularity, b.Popularity) },
	SortScoreDesc:      func(a, b tmdb.Movie) int { return cmp.Compare(b.VoteAverage, a.VoteAverage) },
	SortScoreAsc:       func(a, b tmdb.Movie) int { return cmp.Compare(a.VoteAverage, b.VoteAverage) },
	SortReleaseDesc:    func(a, b tmdb.Movie) int { return strings.Compare(b.ReleaseDate, a.ReleaseDate) },
	SortReleaseAsc:     func(a, b tmdb.Movie) int { return strings.Compare(a.ReleaseDate, b.ReleaseDate) },
}

// ParseSort validates a sort name. Blank and "none" mean SortNone.
func ParseSort(name string) (Sort, error) {
	s := Sort(strings.ToLower(strings.TrimSpace(name)))
	if s == "none" || s == SortNone {
		return SortNone, nil
	}
	if _, ok := comparators[s]; !ok {
		return SortNone, fmt.Errorf("unknown sort %q", name)
	}
	return s, nil
}

// Label returns a short display name.
func (s Sort) Label() string {
	switch s {
	case SortNone:
		return "default"
	case SortPopularityDesc:
		return "popularity ↓"
	case SortPopularityAsc:
		return "popularity ↑"
	case SortScoreDesc:
		return "score ↓"
	case SortScoreAsc:
		return "score ↑"
	case SortReleaseDesc:
		return "newest"
	case SortReleaseAsc:
		return "oldest"
	default:
		return string(s)
	}
}

// NextSort cycles through the supported orderings.
func NextSort(s Sort) Sort {
	i := slices.Index(sortOrder, s)
	return sortOrder[(i+1)%len(sortOrder)]
}

var minScoreSteps = []float64{0, 5, 6, 7, 8}

// NextMinScore cycles through the score thresholds offered by the UI.
func NextMinScore(v float64) float64 {
	for _, step := range minScoreSteps {
		if step > v {
			return step
		}
	}
	return minScoreSteps[0]
}

// Spec selects and orders movies. The zero Spec keeps everything in input
// order.
type Spec struct {
	// GenreIDs keeps movies tagged with at least one of the ids.
	GenreIDs []int
	// MinScore keeps movies whose vote average is at least MinScore. Zero or
	// less disables the filter.
	MinScore float64
	// DatePrefix keeps movies whose release date starts with it, e.g. "1999"
	// or "2024-05".
	DatePrefix string
	Sort       Sort
}

// Active reports whether s filters or reorders anything.
func (s Spec) Active() bool {
	return len(s.GenreIDs) > 0 || s.MinScore > 0 || s.DatePrefix != "" || s.Sort != SortNone
}

// Apply returns the movies matching spec, in spec's order. Filters run in a
// fixed order and the sort is stable. items is not modified.
func Apply(items []tmdb.Movie, spec Spec) []tmdb.Movie {
	out := make([]tmdb.Movie, 0, len(items))
	for _, m := range items {
		if !matchesGenre(m, spec.GenreIDs) {
			continue
		}
		if spec.MinScore > 0 && m.VoteAverage < spec.MinScore {
			continue
		}
		if spec.DatePrefix != "" && !strings.HasPrefix(m.ReleaseDate, spec.DatePrefix) {
			continue
		}
		out = append(out, m)
	}
	if compare, ok := comparators[spec.Sort]; ok {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Query translates s into a remote discovery request for page. The date
// prefix contributes its year only.
func (s Spec) Query(page int) tmdb.DiscoverQuery {
	q := tmdb.DiscoverQuery{
		Page:     page,
		GenreIDs: slices.Clone(s.GenreIDs),
		MinScore: s.MinScore,
		SortBy:   string(s.Sort),
	}
	if rest, ok := strings.CutPrefix(q.SortBy, "release_date"); ok {
		q.SortBy = "primary_release_date" + rest
	}
	if len(s.DatePrefix) >= 4 {
		if year, err := strconv.Atoi(s.DatePrefix[:4]); err == nil && year > 0 {
			q.Year = year
		}
	}
	return q
}

func matchesGenre(m tmdb.Movie, ids []int) bool {
	if len(ids) == 0 {
		return true
	}
	return slices.ContainsFunc(ids, m.HasGenre)
}
