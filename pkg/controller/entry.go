package controller

import "github.com/Sternrassler/go-scrollpager/pkg/pager"

// Entry is one element of the controller's sequence: either an
// application item or the synthetic footer reflecting load progress.
// The tagged variant replaces runtime type inspection of a mixed list.
type Entry[T comparable] struct {
	item     T
	footer   pager.State
	isFooter bool
}

// ItemEntry wraps an application item as a sequence entry.
func ItemEntry[T comparable](item T) Entry[T] {
	return Entry[T]{item: item}
}

// FooterEntry creates a footer entry for the given loading state.
func FooterEntry[T comparable](state pager.State) Entry[T] {
	return Entry[T]{footer: state, isFooter: true}
}

// Item returns the application payload and true when the entry is an
// item, or the zero value and false for a footer.
func (e Entry[T]) Item() (T, bool) {
	if e.isFooter {
		var zero T
		return zero, false
	}
	return e.item, true
}

// Footer returns the footer state and true when the entry is a footer.
func (e Entry[T]) Footer() (pager.State, bool) {
	if !e.isFooter {
		return "", false
	}
	return e.footer, true
}

// IsFooter reports whether the entry is the footer slot.
func (e Entry[T]) IsFooter() bool {
	return e.isFooter
}
