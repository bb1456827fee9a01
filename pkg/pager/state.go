package pager

// State represents the loading state of a pagination fetch.
type State string

const (
	// StateDone indicates no fetch is in progress.
	StateDone State = "done"

	// StateLoading indicates a fetch is in progress.
	StateLoading State = "loading"

	// StateError indicates the last fetch failed.
	StateError State = "error"
)

// Terminal returns true for states that end a fetch invocation.
func (s State) Terminal() bool {
	return s == StateDone || s == StateError
}
