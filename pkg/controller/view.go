package controller

// View receives minimal mutation notifications from the controller.
// Implementations translate them into list-widget updates; the
// controller treats the widget itself as a black box.
//
// All notifications are delivered while the controller holds its internal
// lock, from either the caller's goroutine (synchronous mutations) or the
// dispatch goroutine (loader emissions). Implementations must not call
// back into the controller from a notification.
type View interface {
	// ItemInserted signals a single element inserted at index.
	ItemInserted(index int)

	// RangeInserted signals count elements inserted starting at start.
	RangeInserted(start, count int)

	// ItemChanged signals an in-place replacement at index.
	ItemChanged(index int)

	// ItemRemoved signals removal of the element at index.
	ItemRemoved(index int)

	// Reset signals that the whole sequence was cleared.
	Reset()
}
