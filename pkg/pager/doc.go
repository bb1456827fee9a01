// Package pager implements the page-loading half of the scroll controller:
// position bookkeeping, end-of-list detection, and the asynchronous fetch
// protocol that feeds item batches and loading states to a controller.
//
// Applications implement the Source interface (or wrap a function with
// SourceFunc) and hand it to a Loader. The Loader owns the pagination
// cursor and runs each fetch on its own goroutine:
//
//	source := pager.SourceFunc[string](func(ctx context.Context, position, pageSize int) ([]string, error) {
//		return db.Query(ctx, position, pageSize)
//	})
//
//	loader := pager.New[string](source, pager.DefaultConfig())
//	loader.FetchNext(ctx)
//
// Each FetchNext invocation emits StateLoading on the state channel, then
// either the fetched batch followed by StateDone, or StateError on failure.
// Exactly one terminal state is emitted per invocation. A batch shorter
// than the page size marks the source as exhausted; ReachedEnd stays true
// until ResetPosition.
//
// The item and state channels are independent and FIFO, but ordering
// between them is not guaranteed. Emissions are fire-and-forget: a full
// buffer or a closed loader drops the emission instead of blocking the
// fetch goroutine.
//
// The loader exports Prometheus metrics:
//
//   - scrollpager_fetches_total{result} - Fetches by result (success, error)
//   - scrollpager_fetch_duration_seconds - Successful fetch duration
//   - scrollpager_source_exhausted_total - Short pages marking end-of-list
//   - scrollpager_dropped_emissions_total{channel} - Emissions dropped
package pager
