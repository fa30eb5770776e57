package fetch

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/five82/reel/internal/tmdb"
)

// Untitled is the display title of a movie without any usable name.
const Untitled = "Untitled"

var plainText = bluemonday.StrictPolicy()

// cleanText strips markup and collapses whitespace.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(plainText.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// DisplayTitle picks the first non-empty of title, name, original title and
// original name.
func DisplayTitle(m tmdb.Movie) string {
	for _, candidate := range []string{m.Title, m.Name, m.OriginalTitle, m.OriginalName} {
		if t := cleanText(candidate); t != "" {
			return t
		}
	}
	return Untitled
}

// NormalizeMovie sets the display title and strips markup from the overview.
func NormalizeMovie(m tmdb.Movie) tmdb.Movie {
	m.Title = DisplayTitle(m)
	m.Overview = cleanText(m.Overview)
	return m
}

// NormalizePage normalizes every result of p into a fresh slice.
func NormalizePage(p tmdb.Page) tmdb.Page {
	results := make([]tmdb.Movie, len(p.Results))
	for i, m := range p.Results {
		results[i] = NormalizeMovie(m)
	}
	p.Results = results
	return p
}

// NormalizeDetail normalizes the movie part of d.
func NormalizeDetail(d tmdb.MovieDetail) tmdb.MovieDetail {
	d.Movie = NormalizeMovie(d.Movie)
	d.Tagline = cleanText(d.Tagline)
	return d
}
