package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnauthorized matches a *StatusError carrying HTTP 401.
var ErrUnauthorized = errors.New("credential rejected by catalog")

// Fetcher defines the catalog calls reel makes.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Page(ctx context.Context, path, credential string) (Page, error)
	Movie(ctx context.Context, id int64, credential string) (MovieDetail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// Unwrap exposes ErrUnauthorized for 401 responses.
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	language  string
	limiter   *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLanguage sets the language query parameter sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = strings.TrimSpace(lang) }
}

// WithRateLimit caps outbound requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	defaultUserAgent = "reel/0.1"
	defaultRate      = 20
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(defaultRate), defaultRate),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Page retrieves one page of any list endpoint.
func (c *Client) Page(ctx context.Context, path, credential string) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	var payload Page
	if err := c.get(ctx, path, credential, &payload); err != nil {
		return Page{}, err
	}
	return payload, nil
}

// Movie retrieves the details of a single movie.
func (c *Client) Movie(ctx context.Context, id int64, credential string) (MovieDetail, error) {
	if c == nil {
		return MovieDetail{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return MovieDetail{}, fmt.Errorf("movie id required")
	}
	var payload MovieDetail
	if err := c.get(ctx, MoviePath(id), credential, &payload); err != nil {
		return MovieDetail{}, err
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, path, credential string, dest any) error {
	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	query := reqURL.Query()
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}
	bearer := isBearerToken(credential)
	if credential != "" && !bearer {
		query.Set("api_key", credential)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if bearer {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("execute request %s: %w", rel.Path, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, Status: resp.StatusCode, Message: statusMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isBearerToken recognises v4 read access tokens (JWTs).
func isBearerToken(credential string) bool {
	return strings.HasPrefix(credential, "eyJ") && strings.Count(credential, ".") == 2
}

// statusMessage extracts status_message from an error body when present.
func statusMessage(body io.Reader) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.StatusMessage)
}

// redact strips the request URL (which may carry api_key) from transport
// errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
