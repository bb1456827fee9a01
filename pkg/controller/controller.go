package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/Sternrassler/go-scrollpager/pkg/pager"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for controller operations.
var (
	itemsInsertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrollpager_items_inserted_total",
		Help: "Items inserted into the sequence",
	})

	footerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrollpager_footer_transitions_total",
		Help: "Loading states applied to the footer slot",
	}, []string{"state"})

	reloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrollpager_reloads_total",
		Help: "Clear-and-reload operations",
	})

	rejectedMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrollpager_rejected_mutations_total",
		Help: "Mutations rejected silently by operation",
	}, []string{"op"})
)

// Config holds controller configuration.
type Config struct {
	// EagerFirstLoad triggers the first page fetch immediately on Attach
	// instead of waiting for the first scroll-to-end signal.
	EagerFirstLoad bool
}

// Controller owns the visible item sequence of an infinitely-scrolling
// list and the loading-state machine behind its trailing footer.
// The zero value is not usable; use New.
type Controller[T comparable] struct {
	mu           sync.Mutex
	entries      []Entry[T]
	present      map[T]struct{}
	state        pager.State
	hasFooter    bool
	loader       *pager.Loader[T]
	view         View
	attached     bool
	ctx          context.Context
	done         chan struct{}
	closed       bool
	dispatchStop chan struct{}
	cfg          Config
	logger       zerolog.Logger
}

// New creates a controller bound to the given loader. The loader may be
// nil; an unbound controller forces StateDone on scroll-to-end instead
// of fetching.
func New[T comparable](loader *pager.Loader[T], cfg Config) *Controller[T] {
	return &Controller[T]{
		present: make(map[T]struct{}),
		state:   pager.StateDone,
		loader:  loader,
		done:    make(chan struct{}),
		cfg:     cfg,
		logger:  log.With().Str("component", "controller").Logger(),
	}
}

// Attach binds the view, starts consuming the loader's emissions, and
// if configured for eager start triggers the first page load. The
// context bounds all fetches triggered by scroll signals.
func (c *Controller[T]) Attach(ctx context.Context, view View) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	c.view = view
	c.attached = true
	c.ctx = ctx
	if c.loader != nil && c.dispatchStop == nil {
		c.startDispatchLocked(c.loader)
	}
	eager := c.cfg.EagerFirstLoad && c.loader != nil
	c.mu.Unlock()

	if eager {
		c.triggerFetch(ctx)
	}
}

// OnScroll consumes a scroll-position signal from the view. When the
// last visible index is the last element of the sequence, the controller
// asks the loader for the next page - unless the source is exhausted or
// a fetch is already in flight.
func (c *Controller[T]) OnScroll(lastVisible int) {
	c.mu.Lock()

	if lastVisible != len(c.entries)-1 {
		c.mu.Unlock()
		return
	}

	loader := c.loader
	if loader == nil {
		// No loader bound: nothing to fetch, drop any stale footer.
		c.applyStateLocked(pager.StateDone)
		c.mu.Unlock()
		return
	}
	if loader.ReachedEnd() {
		c.applyStateLocked(pager.StateDone)
		c.mu.Unlock()
		return
	}
	if c.state == pager.StateLoading {
		// At most one fetch in flight per controller.
		c.mu.Unlock()
		return
	}

	c.applyStateLocked(pager.StateLoading)
	ctx := c.ctx
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	loader.FetchNext(ctx)
}

// Add appends an item before the footer slot. Silent no-op if the item
// is already present anywhere in the sequence.
func (c *Controller[T]) Add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.present[item]; dup {
		rejectedMutationsTotal.WithLabelValues("add").Inc()
		return
	}

	wasEmpty := c.itemCountLocked() == 0
	pos := c.insertPositionLocked()
	c.entries = slices.Insert(c.entries, pos, ItemEntry(item))
	c.present[item] = struct{}{}
	itemsInsertedTotal.Inc()
	c.notifyInserted(pos)

	if wasEmpty {
		c.hidePlaceholderLocked()
	}
}

// AddBatch appends the subset of the batch not already present, emitting
// one range notification covering exactly the appended span. A batch
// fully contained in the sequence produces no mutation and no
// notification.
func (c *Controller[T]) AddBatch(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendAbsentLocked(items)
}

// InsertAt inserts an item at an explicit index. Silent no-op if the
// item already exists anywhere in the sequence or the index is out of
// range (the footer slot cannot be displaced past).
func (c *Controller[T]) InsertAt(index int, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.present[item]; dup {
		rejectedMutationsTotal.WithLabelValues("insert").Inc()
		return
	}
	if index < 0 || index > c.itemCountLocked() {
		rejectedMutationsTotal.WithLabelValues("insert").Inc()
		return
	}

	wasEmpty := c.itemCountLocked() == 0
	c.entries = slices.Insert(c.entries, index, ItemEntry(item))
	c.present[item] = struct{}{}
	itemsInsertedTotal.Inc()
	c.notifyInserted(index)

	if wasEmpty {
		c.hidePlaceholderLocked()
	}
}

// RemoveAt removes the element at index. Permitted only while the
// loading state is StateDone; rejected silently otherwise to avoid
// racing the footer slot. Shows the placeholder when the sequence
// becomes empty.
func (c *Controller[T]) RemoveAt(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != pager.StateDone {
		rejectedMutationsTotal.WithLabelValues("remove").Inc()
		c.logger.Debug().Int("index", index).Str("state", string(c.state)).
			Msg("Remove rejected while load active")
		return
	}
	if index < 0 || index >= len(c.entries) {
		rejectedMutationsTotal.WithLabelValues("remove").Inc()
		return
	}

	if item, ok := c.entries[index].Item(); ok {
		delete(c.present, item)
	}
	c.entries = slices.Delete(c.entries, index, index+1)
	c.notifyRemoved(index)

	if len(c.entries) == 0 {
		c.showPlaceholderLocked()
	}
}

// At returns the entry at index, or false when out of range. Never
// panics for out-of-range access.
func (c *Controller[T]) At(index int) (Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.entries) {
		return Entry[T]{}, false
	}
	return c.entries[index], true
}

// Len returns the sequence length, footer slot included.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// State returns the current loading state.
func (c *Controller[T]) State() pager.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasFooter reports whether the footer slot is occupied.
func (c *Controller[T]) HasFooter() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasFooter
}

// Reload empties the sequence, notifies a full reset, rewinds the
// loader's position and end-of-list flag, and immediately triggers a
// new fetch.
func (c *Controller[T]) Reload(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	c.entries = nil
	c.present = make(map[T]struct{})
	c.hasFooter = false
	c.state = pager.StateDone
	reloadsTotal.Inc()
	c.notifyReset()
	loader := c.loader
	c.mu.Unlock()

	if loader == nil {
		return
	}
	loader.ResetPosition()
	c.triggerFetch(ctx)
}

// SetLoader rebinds the loader, or unbinds it when nil. An unbound
// controller forces StateDone on subsequent scroll-to-end signals.
func (c *Controller[T]) SetLoader(loader *pager.Loader[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if loader == c.loader {
		return
	}
	if c.dispatchStop != nil {
		close(c.dispatchStop)
		c.dispatchStop = nil
	}
	c.loader = loader
	if loader != nil && c.attached {
		c.startDispatchLocked(loader)
	}
}

// Close stops the dispatch goroutine. Loader emissions arriving after
// Close are dropped; in-flight fetches are not cancelled.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// triggerFetch transitions to StateLoading and starts a fetch, unless
// one is already in flight.
func (c *Controller[T]) triggerFetch(ctx context.Context) {
	c.mu.Lock()
	loader := c.loader
	if loader == nil || c.state == pager.StateLoading {
		c.mu.Unlock()
		return
	}
	c.applyStateLocked(pager.StateLoading)
	c.mu.Unlock()

	loader.FetchNext(ctx)
}

// startDispatchLocked starts the single consumer goroutine for the given
// loader's channels. Caller must hold the controller mutex.
func (c *Controller[T]) startDispatchLocked(loader *pager.Loader[T]) {
	stop := make(chan struct{})
	c.dispatchStop = stop

	go func() {
		items := loader.Items()
		states := loader.States()
		for {
			select {
			case <-c.done:
				return
			case <-stop:
				return
			case batch, ok := <-items:
				if !ok {
					items = nil
					if states == nil {
						return
					}
					continue
				}
				c.applyBatch(batch)
			case s, ok := <-states:
				if !ok {
					states = nil
					if items == nil {
						return
					}
					continue
				}
				c.applyState(s)
			}
		}
	}()
}

// applyBatch applies a loader item batch to the sequence. Emissions
// arriving after Close are dropped.
func (c *Controller[T]) applyBatch(batch []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.appendAbsentLocked(batch)
}

// applyState applies a loading state to the footer slot. Emissions
// arriving after Close are dropped.
func (c *Controller[T]) applyState(s pager.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.applyStateLocked(s)
}

// applyStateLocked runs the footer application algorithm:
//
//   - Loading/Error: occupy the footer slot - replace an existing footer
//     in place (change notification) or append one (insert notification).
//   - Done: release the footer slot if occupied (remove notification).
//
// Two consecutive identical states collapse to a single in-place
// replace; the sequence never holds two footers. Caller must hold the
// controller mutex.
func (c *Controller[T]) applyStateLocked(s pager.State) {
	c.state = s
	footerTransitionsTotal.WithLabelValues(string(s)).Inc()

	switch s {
	case pager.StateDone:
		if !c.hasFooter {
			return
		}
		idx := len(c.entries) - 1
		c.entries = c.entries[:idx]
		c.hasFooter = false
		c.notifyRemoved(idx)

	case pager.StateLoading, pager.StateError:
		c.hasFooter = true
		if len(c.entries) == 0 {
			c.entries = append(c.entries, FooterEntry[T](s))
			c.notifyInserted(0)
			return
		}
		last := len(c.entries) - 1
		if c.entries[last].IsFooter() {
			c.entries[last] = FooterEntry[T](s)
			c.notifyChanged(last)
			return
		}
		c.entries = append(c.entries, FooterEntry[T](s))
		c.notifyInserted(last + 1)
	}
}

// appendAbsentLocked appends the not-yet-present subset of items before
// the footer slot and emits a single range notification for the
// appended span. Caller must hold the controller mutex.
func (c *Controller[T]) appendAbsentLocked(items []T) {
	fresh := make([]Entry[T], 0, len(items))
	for _, item := range items {
		if _, dup := c.present[item]; dup {
			continue
		}
		c.present[item] = struct{}{}
		fresh = append(fresh, ItemEntry(item))
	}
	if len(fresh) == 0 {
		return
	}

	wasEmpty := c.itemCountLocked() == 0
	start := c.insertPositionLocked()
	c.entries = slices.Insert(c.entries, start, fresh...)
	itemsInsertedTotal.Add(float64(len(fresh)))
	c.notifyRangeInserted(start, len(fresh))

	if wasEmpty {
		c.hidePlaceholderLocked()
	}
}

// insertPositionLocked returns the append position for new items: the
// end of the sequence, or just before the footer slot when present.
func (c *Controller[T]) insertPositionLocked() int {
	if c.hasFooter {
		return len(c.entries) - 1
	}
	return len(c.entries)
}

// itemCountLocked returns the number of item entries, footer excluded.
func (c *Controller[T]) itemCountLocked() int {
	n := len(c.entries)
	if c.hasFooter {
		n--
	}
	return n
}

func (c *Controller[T]) showPlaceholderLocked() {
	if c.loader != nil {
		c.loader.ShowPlaceholder()
	}
}

func (c *Controller[T]) hidePlaceholderLocked() {
	if c.loader != nil {
		c.loader.HidePlaceholder()
	}
}

func (c *Controller[T]) notifyInserted(index int) {
	if c.view != nil {
		c.view.ItemInserted(index)
	}
}

func (c *Controller[T]) notifyRangeInserted(start, count int) {
	if c.view != nil {
		c.view.RangeInserted(start, count)
	}
}

func (c *Controller[T]) notifyChanged(index int) {
	if c.view != nil {
		c.view.ItemChanged(index)
	}
}

func (c *Controller[T]) notifyRemoved(index int) {
	if c.view != nil {
		c.view.ItemRemoved(index)
	}
}

func (c *Controller[T]) notifyReset() {
	if c.view != nil {
		c.view.Reset()
	}
}
