package pager

import "fmt"

// FetchError wraps a source failure with the pagination context it
// occurred in. It is logged and counted, never delivered to the
// controller: fetch failures surface only as StateError.
type FetchError struct {
	Position int
	PageSize int
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page at position %d (page size %d): %v",
		e.Position, e.PageSize, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}
