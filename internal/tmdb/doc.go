// Package tmdb provides an HTTP client for a TMDB-compatible movie catalog API.
//
// # Overview
//
// This package defines the client reel uses to browse the remote catalog. It
// handles HTTP communication, credential placement, rate limiting and the
// typed representation of movies and result pages.
//
// # Architecture
//
//   - client.go: HTTP client, request building and error mapping
//   - paths.go: builders for the list-shaped endpoints
//   - types.go: data structures mirroring the API schema
//   - genres.go: the static movie genre table
//
// # Client Usage
//
//	client, err := tmdb.NewClient("https://api.themoviedb.org/3")
//	if err != nil {
//		return err
//	}
//
//	page, err := client.Page(ctx, tmdb.CategoryPath(tmdb.CategoryPopular, 1), apiKey)
//	detail, err := client.Movie(ctx, 603, apiKey)
//
// # API Endpoints
//
//   - GET movie/{category}?page=N   popular, top_rated, upcoming, now_playing
//   - GET search/movie?query=Q&page=N
//   - GET discover/movie?with_genres=..&vote_average.gte=..&sort_by=..
//   - GET movie/{id}
//
// List endpoints all answer with the same page envelope (Page), so a single
// Page method serves them; callers pick the endpoint by path. The path is
// also what the fetch layer uses as its cache key.
//
// # Credentials
//
// The catalog accepts two credential shapes. A v4 read access token (a JWT,
// three dot-separated base64 segments starting with "eyJ") is sent as
// "Authorization: Bearer <token>". Anything else is treated as a v3 API key
// and sent as the api_key query parameter. Credentials never appear in error
// messages.
//
// # Error Handling
//
//   - Network errors: wrapped "execute request" errors
//   - HTTP status >= 400: *StatusError; 401 also matches ErrUnauthorized
//   - Malformed JSON: wrapped "decode response" errors
//   - Context cancellation: the context error, unwrapped by errors.Is
//
// # Rate Limiting
//
// Every request waits on a token bucket (golang.org/x/time/rate) before it is
// sent. Waiting honours the request context, so a cancelled load stops
// queueing immediately.
package tmdb
