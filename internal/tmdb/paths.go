package tmdb

import (
	"net/url"
	"strconv"
	"strings"
)

// Category names a curated movie listing.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
	CategoryNowPlaying Category = "now_playing"
)

// Categories lists the supported categories in display order.
func Categories() []Category {
	return []Category{CategoryPopular, CategoryTopRated, CategoryUpcoming, CategoryNowPlaying}
}

// Label returns a display name.
func (c Category) Label() string {
	switch c {
	case CategoryPopular:
		return "Popular"
	case CategoryTopRated:
		return "Top Rated"
	case CategoryUpcoming:
		return "Upcoming"
	case CategoryNowPlaying:
		return "Now Playing"
	default:
		return string(c)
	}
}

// CategoryPath returns the path of a category listing page.
func CategoryPath(c Category, page int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(normalizePage(page)))
	return "movie/" + string(c) + "?" + values.Encode()
}

// SearchPath returns the path of a free-text search page.
func SearchPath(query string, page int) string {
	values := url.Values{}
	values.Set("query", strings.TrimSpace(query))
	values.Set("page", strconv.Itoa(normalizePage(page)))
	return "search/movie?" + values.Encode()
}

// DiscoverQuery configures discover/movie requests.
type DiscoverQuery struct {
	Page     int
	GenreIDs []int
	MinScore float64
	Year     int
	SortBy   string
}

// DiscoverPath returns the path of a filtered discovery page.
func DiscoverPath(q DiscoverQuery) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(normalizePage(q.Page)))
	if len(q.GenreIDs) > 0 {
		ids := make([]string, 0, len(q.GenreIDs))
		for _, id := range q.GenreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		values.Set("with_genres", strings.Join(ids, ","))
	}
	if q.MinScore > 0 {
		values.Set("vote_average.gte", strconv.FormatFloat(q.MinScore, 'f', -1, 64))
	}
	if q.Year > 0 {
		values.Set("primary_release_year", strconv.Itoa(q.Year))
	}
	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		values.Set("sort_by", sortBy)
	}
	return "discover/movie?" + values.Encode()
}

// MoviePath returns the path of a single movie.
func MoviePath(id int64) string {
	return "movie/" + strconv.FormatInt(id, 10)
}

// ParseMoviePath extracts the id from a path built by MoviePath.
func ParseMoviePath(path string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(path, "/"), "movie/")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
