package pager

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for loader operations.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrollpager_fetches_total",
		Help: "Total page fetches by result",
	}, []string{"result"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scrollpager_fetch_duration_seconds",
		Help:    "Duration of successful page fetches in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	})

	sourceExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrollpager_source_exhausted_total",
		Help: "Short pages that marked the source as exhausted",
	})

	droppedEmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrollpager_dropped_emissions_total",
		Help: "Emissions dropped due to a full buffer or closed loader",
	}, []string{"channel"})
)

// Default configuration values.
const (
	DefaultPageSize   = 20
	DefaultBufferSize = 8
)

// Config holds loader configuration.
type Config struct {
	// Offset is the position the pagination starts from.
	Offset int

	// PageSize is the number of items requested per fetch.
	PageSize int

	// BufferSize is the capacity of the item and state channels.
	BufferSize int

	// Placeholder is the optional empty-state collaborator.
	Placeholder Placeholder
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:   DefaultPageSize,
		BufferSize: DefaultBufferSize,
	}
}

// Loader drives pagination over a Source: it tracks the current position,
// detects end-of-list, and runs the fetch protocol for each page.
// All emissions go through two buffered channels consumed by the
// controller; sends never block the fetch goroutine.
type Loader[T comparable] struct {
	mu          sync.Mutex
	source      Source[T]
	offset      int
	pageSize    int
	position    int
	reachedEnd  bool
	fetched     bool
	closed      bool
	placeholder Placeholder
	items       chan []T
	states      chan State
	logger      zerolog.Logger
}

// New creates a loader over the given source. Panics if source is nil.
func New[T comparable](source Source[T], cfg Config) *Loader[T] {
	if source == nil {
		panic("pager: source cannot be nil")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}

	return &Loader[T]{
		source:      source,
		offset:      cfg.Offset,
		pageSize:    cfg.PageSize,
		position:    cfg.Offset,
		placeholder: cfg.Placeholder,
		items:       make(chan []T, cfg.BufferSize),
		states:      make(chan State, cfg.BufferSize),
		logger:      log.With().Str("component", "pager").Logger(),
	}
}

// Configure applies a partial configuration update. PageSize is ignored
// when not positive and Placeholder when nil; BufferSize is fixed at
// construction. Offset is always recorded, but only rewinds the current
// position while no fetch has happened yet - an in-progress pagination is
// never rewound.
func (l *Loader[T]) Configure(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.offset = cfg.Offset
	if !l.fetched {
		l.position = cfg.Offset
	}
	if cfg.PageSize > 0 {
		l.pageSize = cfg.PageSize
	}
	if cfg.Placeholder != nil {
		l.placeholder = cfg.Placeholder
	}
}

// Items returns the channel item batches are delivered on.
func (l *Loader[T]) Items() <-chan []T {
	return l.items
}

// States returns the channel loading states are delivered on.
func (l *Loader[T]) States() <-chan State {
	return l.states
}

// Position returns the current pagination position.
func (l *Loader[T]) Position() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

// PageSize returns the configured page size.
func (l *Loader[T]) PageSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageSize
}

// ReachedEnd reports whether the source is exhausted for this
// pagination epoch.
func (l *Loader[T]) ReachedEnd() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reachedEnd
}

// FetchNext starts fetching the next page on a new goroutine. The fetch
// emits StateLoading, then either the batch followed by StateDone, or
// StateError. Callers must not start a fetch while one is in flight; the
// controller enforces this via its loading state.
func (l *Loader[T]) FetchNext(ctx context.Context) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if l.reachedEnd {
		l.mu.Unlock()
		l.emitState(StateDone)
		return
	}
	l.fetched = true
	position := l.position
	pageSize := l.pageSize
	l.mu.Unlock()

	go l.fetch(ctx, position, pageSize)
}

// fetch runs one complete fetch protocol invocation.
func (l *Loader[T]) fetch(ctx context.Context, position, pageSize int) {
	start := time.Now()
	l.emitState(StateLoading)

	batch, err := l.source.FetchPage(ctx, position, pageSize)
	if err != nil {
		ferr := &FetchError{Position: position, PageSize: pageSize, Err: err}
		l.logger.Warn().
			Err(ferr).
			Int("position", position).
			Int("page_size", pageSize).
			Msg("Page fetch failed")
		fetchesTotal.WithLabelValues("error").Inc()
		l.emitState(StateError)
		return
	}

	if len(batch) > 0 {
		l.emitItems(batch)
	}
	l.advance(len(batch))

	fetchesTotal.WithLabelValues("success").Inc()
	fetchDuration.Observe(time.Since(start).Seconds())

	l.logger.Debug().
		Int("position", position).
		Int("items", len(batch)).
		Dur("duration", time.Since(start)).
		Msg("Page fetch complete")

	l.emitState(StateDone)
}

// advance moves the position past a fetched batch. A batch shorter than
// the page size marks the source as exhausted for this epoch.
func (l *Loader[T]) advance(itemsLoaded int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.position += itemsLoaded
	if itemsLoaded < l.pageSize && !l.reachedEnd {
		l.reachedEnd = true
		sourceExhaustedTotal.Inc()
		l.logger.Debug().
			Int("position", l.position).
			Int("items_loaded", itemsLoaded).
			Msg("Source exhausted")
	}
}

// ResetPosition rewinds the pagination to its offset and clears the
// end-of-list flag, starting a new epoch. Called by the controller's
// reload; not meant to be called while a fetch is in flight.
func (l *Loader[T]) ResetPosition() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.position = l.offset
	l.reachedEnd = false
	l.fetched = false
}

// ShowPlaceholder forwards to the bound placeholder, if any.
func (l *Loader[T]) ShowPlaceholder() {
	l.mu.Lock()
	p := l.placeholder
	l.mu.Unlock()

	if p != nil {
		p.ShowPlaceholder()
	}
}

// HidePlaceholder forwards to the bound placeholder, if any.
func (l *Loader[T]) HidePlaceholder() {
	l.mu.Lock()
	p := l.placeholder
	l.mu.Unlock()

	if p != nil {
		p.HidePlaceholder()
	}
}

// Close closes both emission channels. Emissions from fetches still in
// flight are dropped silently.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.items)
	close(l.states)
}

// emitState delivers a loading state without blocking. Sends happen under
// the loader mutex so they cannot race Close.
func (l *Loader[T]) emitState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		droppedEmissionsTotal.WithLabelValues("states").Inc()
		return
	}
	select {
	case l.states <- s:
	default:
		droppedEmissionsTotal.WithLabelValues("states").Inc()
		l.logger.Debug().Str("state", string(s)).Msg("State emission dropped")
	}
}

// emitItems delivers an item batch without blocking.
func (l *Loader[T]) emitItems(batch []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		droppedEmissionsTotal.WithLabelValues("items").Inc()
		return
	}
	select {
	case l.items <- batch:
	default:
		droppedEmissionsTotal.WithLabelValues("items").Inc()
		l.logger.Debug().Int("items", len(batch)).Msg("Item emission dropped")
	}
}
