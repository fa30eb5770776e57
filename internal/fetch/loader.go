// Package fetch loads catalog data for the UI.
//
// A Loader runs at most one request at a time. Starting a load cancels the
// previous request and bumps a generation counter; a response is applied
// only while its generation is current, so a late answer to a superseded
// request is dropped even if the transport ignored the cancellation.
// Successful results are stored in a Cache shared by every loader.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/reel/internal/tmdb"
)

// Status is the phase of a Loader.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a snapshot of a Loader.
type State[T any] struct {
	Status Status
	Path   string
	Data   T
	Err    error
	// Cached is set when Data came from the cache without a request.
	Cached bool
}

// CredentialSource supplies the API key when a load is started without one.
type CredentialSource interface {
	Secret() string
}

// Func performs one request.
type Func[T any] func(ctx context.Context, path, credential string) (T, error)

// Loader is a restartable, cancellable fetch for one view.
type Loader[T any] struct {
	kind      string
	fetch     Func[T]
	normalize func(T) T
	cache     *Cache[T]
	creds     CredentialSource
	metrics   *Collector
	log       *zap.Logger

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	state     State[T]
	disposed  bool
	listeners []func(State[T])
}

// Option customises a Loader.
type Option func(*options)

type options struct {
	creds   CredentialSource
	metrics *Collector
	log     *zap.Logger
}

// WithCredentials sets the fallback credential source.
func WithCredentials(src CredentialSource) Option {
	return func(o *options) { o.creds = src }
}

// WithMetrics records loader activity on c.
func WithMetrics(c *Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a Loader. kind labels logs and metrics.
func New[T any](kind string, fn Func[T], normalize func(T) T, cache *Cache[T], opts ...Option) *Loader[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if normalize == nil {
		normalize = func(v T) T { return v }
	}
	return &Loader[T]{
		kind:      kind,
		fetch:     fn,
		normalize: normalize,
		cache:     cache,
		creds:     o.creds,
		metrics:   o.metrics,
		log:       o.log.Named("fetch").With(zap.String("kind", kind)),
	}
}

// NewPageLoader loads list pages such as categories, searches and discovery.
func NewPageLoader(api tmdb.Fetcher, cache *Cache[tmdb.Page], opts ...Option) *Loader[tmdb.Page] {
	return New[tmdb.Page]("page", api.Page, NormalizePage, cache, opts...)
}

// NewDetailLoader loads single movies by tmdb.MoviePath.
func NewDetailLoader(api tmdb.Fetcher, cache *Cache[tmdb.MovieDetail], opts ...Option) *Loader[tmdb.MovieDetail] {
	fn := func(ctx context.Context, path, credential string) (tmdb.MovieDetail, error) {
		id, ok := tmdb.ParseMoviePath(path)
		if !ok {
			return tmdb.MovieDetail{}, fmt.Errorf("not a movie path: %q", path)
		}
		return api.Movie(ctx, id, credential)
	}
	return New[tmdb.MovieDetail]("detail", fn, NormalizeDetail, cache, opts...)
}

// Load starts loading path, serving it from the cache when possible. An empty
// credential falls back to the CredentialSource.
//
// The returned channel receives the final state of this load, or is closed
// without a value when the load is superseded, cancelled or disposed.
func (l *Loader[T]) Load(ctx context.Context, path, credential string) <-chan State[T] {
	return l.start(ctx, path, credential, true)
}

// Reload is Load without the cache lookup.
func (l *Loader[T]) Reload(ctx context.Context, path, credential string) <-chan State[T] {
	return l.start(ctx, path, credential, false)
}

// State returns the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// OnChange registers fn to run on every state transition.
func (l *Loader[T]) OnChange(fn func(State[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Cancel abandons the in-flight request, if any. Its result is dropped and
// a pending Loading state becomes Idle. The loader stays usable.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.gen++
	l.stopLocked()
	if l.state.Status != StatusLoading {
		l.mu.Unlock()
		return
	}
	l.state.Status = StatusIdle
	st := l.state
	listeners := l.listeners
	l.mu.Unlock()
	notify(listeners, st)
}

// Reset abandons the in-flight request and forgets the current state and
// every cached result, e.g. when the credential they were fetched with is
// gone.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.gen++
	l.stopLocked()
	l.cache.Reset()
	l.state = State[T]{}
	listeners := l.listeners
	l.mu.Unlock()
	notify(listeners, State[T]{})
}

// Dispose cancels the in-flight request. Later loads are ignored.
func (l *Loader[T]) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return
	}
	l.disposed = true
	l.gen++
	l.stopLocked()
	l.listeners = nil
}

func (l *Loader[T]) start(ctx context.Context, path, credential string, useCache bool) <-chan State[T] {
	out := make(chan State[T], 1)
	if credential == "" && l.creds != nil {
		credential = l.creds.Secret()
	}

	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		close(out)
		return out
	}
	l.gen++
	gen := l.gen
	l.stopLocked()
	prev := l.state
	if prev.Status == StatusLoading {
		prev.Status = StatusIdle
	}

	if credential == "" {
		st := State[T]{Status: StatusError, Path: path, Err: ErrMissingCredential}
		l.metrics.failure(l.kind, st.Err)
		l.finishLocked(st, out)
		return out
	}
	if useCache {
		if data, ok := l.cache.Get(path); ok {
			l.metrics.cacheHit(l.kind)
			l.finishLocked(State[T]{Status: StatusSuccess, Path: path, Data: data, Cached: true}, out)
			return out
		}
	}

	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	loading := State[T]{Status: StatusLoading, Path: path, Data: prev.Data}
	l.state = loading
	listeners := l.listeners
	l.mu.Unlock()

	notify(listeners, loading)
	l.metrics.request(l.kind)
	l.log.Debug("load", zap.String("path", path), zap.Uint64("generation", gen))

	go l.run(reqCtx, cancel, gen, prev, path, credential, out)
	return out
}

func (l *Loader[T]) run(ctx context.Context, cancel context.CancelFunc, gen uint64, prev State[T], path, credential string, out chan State[T]) {
	defer cancel()
	data, err := l.fetch(ctx, path, credential)

	l.mu.Lock()
	if gen != l.gen || l.disposed {
		l.mu.Unlock()
		close(out)
		return
	}
	l.cancel = nil

	if err != nil {
		failure := classify(ctx, err)
		if failure == nil {
			// Cancelled by the caller's context: restore the previous state.
			l.state = prev
			listeners := l.listeners
			l.mu.Unlock()
			l.metrics.cancellation(l.kind)
			notify(listeners, prev)
			close(out)
			return
		}
		l.metrics.failure(l.kind, failure)
		l.log.Warn("load failed", zap.String("path", path), zap.Error(err))
		l.finishLocked(State[T]{Status: StatusError, Path: path, Err: failure}, out)
		return
	}

	data = l.normalize(data)
	l.cache.Put(path, data)
	l.finishLocked(State[T]{Status: StatusSuccess, Path: path, Data: data}, out)
}

// finishLocked records st, unlocks, notifies and delivers st on out.
func (l *Loader[T]) finishLocked(st State[T], out chan State[T]) {
	l.state = st
	listeners := l.listeners
	l.mu.Unlock()
	notify(listeners, st)
	out <- st
	close(out)
}

func (l *Loader[T]) stopLocked() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	l.cancel = nil
	l.metrics.cancellation(l.kind)
}

func notify[T any](listeners []func(State[T]), st State[T]) {
	for _, fn := range listeners {
		fn(st)
	}
}
