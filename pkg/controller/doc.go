// Package controller implements the paginated collection controller: it
// owns the ordered item sequence (including the synthetic trailing footer
// slot), consumes scroll signals to decide when to fetch the next page,
// and applies the loader's emissions to the sequence as minimal list
// mutations delivered to the attached view.
//
// # Basic Usage
//
//	loader := pager.New[Article](source, pager.DefaultConfig())
//	ctrl := controller.New[Article](loader, controller.Config{EagerFirstLoad: true})
//	defer ctrl.Close()
//
//	ctrl.Attach(ctx, view)
//
//	// From the view's scroll callback:
//	ctrl.OnScroll(lastVisibleIndex)
//
// # Sequence invariants
//
//   - At most one footer entry, always the last element.
//   - HasFooter() is true exactly while State() is not StateDone
//     (once a first load has occurred).
//   - No duplicate items: inserts of items already present anywhere in
//     the sequence are silent no-ops.
//
// # Threading
//
// A single dispatch goroutine, started by Attach, is the only consumer of
// the loader's item and state channels. It serializes asynchronous
// mutations with the public API through the controller's mutex, so the
// sequence is never mutated concurrently. Close stops the dispatch
// goroutine; loader emissions arriving afterwards are dropped.
//
// The two loader channels are independent: a terminal state may arrive
// before or after its item batch. The footer application algorithm is
// idempotent under either order.
package controller
