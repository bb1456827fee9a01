package pager

import "context"

// Source is the interface applications implement to supply pages of items.
// This is the sole integration point for application-specific data access.
type Source[T comparable] interface {
	// FetchPage fetches up to pageSize items starting at position.
	// A batch shorter than pageSize signals the end of the data source.
	FetchPage(ctx context.Context, position, pageSize int) ([]T, error)
}

// SourceFunc is a function adapter that implements the Source interface.
type SourceFunc[T comparable] func(ctx context.Context, position, pageSize int) ([]T, error)

// FetchPage implements the Source interface for SourceFunc.
func (f SourceFunc[T]) FetchPage(ctx context.Context, position, pageSize int) ([]T, error) {
	return f(ctx, position, pageSize)
}

// Placeholder is the empty-state collaborator toggled when the list
// becomes empty or gains its first items.
type Placeholder interface {
	ShowPlaceholder()
	HidePlaceholder()
}
