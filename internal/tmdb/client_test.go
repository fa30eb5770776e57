package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testJWT = "eyJhbGciOiJIUzI1NiJ9.eyJhdWQiOiJ4In0.c2ln"

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL+"/" {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("example.com:1234/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/api/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_PageSendsAPIKeyAndLanguage(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page{
			Page:       1,
			TotalPages: 3,
			Results:    []Movie{{ID: 603, Title: "The Matrix", VoteAverage: 8.2}},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/3", WithLanguage("de-DE"), WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.Page(ctx, CategoryPath(CategoryTopRated, 2), "abc123")
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 603 || !page.HasNext() {
		t.Fatalf("Page payload = %#v, want 1 result and a next page", page)
	}
	if gotPath != "/3/movie/top_rated" {
		t.Fatalf("path = %q, want /3/movie/top_rated", gotPath)
	}
	if gotQuery.Get("api_key") != "abc123" || gotQuery.Get("page") != "2" || gotQuery.Get("language") != "de-DE" {
		t.Fatalf("query = %v, want api_key, page and language", gotQuery)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty for v3 keys", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "reel/") {
		t.Fatalf("User-Agent = %q, want reel/*", gotUserAgent)
	}
}

func TestClient_BearerTokenGoesInHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(MovieDetail{Movie: Movie{ID: 7, Title: "Se7en"}, Runtime: 127})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	detail, err := c.Movie(context.Background(), 7, testJWT)
	if err != nil {
		t.Fatalf("Movie returned error: %v", err)
	}
	if detail.ID != 7 || detail.Runtime != 127 {
		t.Fatalf("detail = %#v, want id 7 runtime 127", detail)
	}
	if gotAuth != "Bearer "+testJWT {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotQuery.Has("api_key") {
		t.Fatalf("api_key must not be sent with a bearer token: %v", gotQuery)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/popular":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_message":"Invalid API key: You must be granted a valid key."}`))
		case "/movie/upcoming":
			http.Error(w, "nope", http.StatusServiceUnavailable)
		case "/movie/now_playing":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Page(context.Background(), CategoryPath(CategoryPopular, 1), "secret-key")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Page error = %v, want ErrUnauthorized", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks the credential: %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("error = %v, want status_message included", err)
	}

	_, err = c.Page(context.Background(), CategoryPath(CategoryUpcoming, 1), "k")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("Page error = %v, want StatusError 503", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("503 must not match ErrUnauthorized")
	}

	_, err = c.Page(context.Background(), CategoryPath(CategoryNowPlaying, 1), "k")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Page error = %v, want decode response error", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL, WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = c.Page(ctx, SearchPath("matrix", 1), "k")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Page error = %v, want context.Canceled", err)
	}
}

func TestClient_RateLimitWaitHonoursContext(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(Page{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRateLimit(0.01))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Page(context.Background(), SearchPath("a", 1), "k"); err != nil {
		t.Fatalf("first Page returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Page(ctx, SearchPath("b", 1), "k"); err == nil {
		t.Fatalf("second Page returned nil error, want limiter wait error")
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1", hits.Load())
	}
}

func TestClient_MovieRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Movie(context.Background(), 0, "k"); err == nil {
		t.Fatalf("Movie returned nil error, want error")
	}
}

func TestIsBearerToken(t *testing.T) {
	if !isBearerToken(testJWT) {
		t.Fatalf("isBearerToken(jwt) = false, want true")
	}
	for _, v := range []string{"", "0123456789abcdef0123456789abcdef", "eyJonly.one", "a.b.c"} {
		if isBearerToken(v) {
			t.Fatalf("isBearerToken(%q) = true, want false", v)
		}
	}
}
