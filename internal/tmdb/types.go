package tmdb

import (
	"slices"
	"strings"
)

// Movie mirrors a result item of the list endpoints.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
}

// Year returns the release year, or "" when the date is unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// HasGenre reports whether the movie is tagged with genre id.
func (m Movie) HasGenre(id int) bool {
	return slices.Contains(m.GenreIDs, id)
}

// Page mirrors the envelope of every list endpoint.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasNext reports whether another page exists.
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// Genre is a named genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail mirrors GET movie/{id}.
type MovieDetail struct {
	Movie
	Genres   []Genre `json:"genres"`
	Runtime  int     `json:"runtime"`
	Tagline  string  `json:"tagline"`
	Status   string  `json:"status"`
	Homepage string  `json:"homepage"`
	IMDbID   string  `json:"imdb_id"`
}

// GenreNames joins the detail's genre names.
func (d MovieDetail) GenreNames() string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// ImageURL joins an image base URL and a poster or backdrop path. It returns
// "" when the path is missing.
func ImageURL(base string, path *string) string {
	if path == nil || strings.TrimSpace(*path) == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(*path, "/")
}
