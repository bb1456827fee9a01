package pagecache

import "fmt"

// Key identifies one cached page of a named feed.
type Key struct {
	// Feed is the application-chosen feed name.
	Feed string

	// Position is the pagination position the page starts at.
	Position int

	// PageSize is the page size the page was fetched with.
	PageSize int
}

// String generates a deterministic cache key string.
// Format: scrollpager:page:<feed>:<position>:<page_size>
func (k Key) String() string {
	return fmt.Sprintf("scrollpager:page:%s:%d:%d", k.Feed, k.Position, k.PageSize)
}
