// Package testutil provides fake collaborators for scroll controller tests.
package testutil

import (
	"context"
	"sync"
	"time"
)

// ScriptedPage defines one scripted response of a ScriptedSource.
type ScriptedPage[T comparable] struct {
	Items []T
	Err   error
	Delay time.Duration
}

// PageCall records the arguments of one FetchPage invocation.
type PageCall struct {
	Position int
	PageSize int
}

// ScriptedSource is a pager.Source that replays scripted pages in order
// and tracks every call. When the script is exhausted it returns empty
// pages.
type ScriptedSource[T comparable] struct {
	mu    sync.Mutex
	pages []ScriptedPage[T]
	calls []PageCall
}

// NewScriptedSource creates a source replaying the given pages.
func NewScriptedSource[T comparable](pages ...ScriptedPage[T]) *ScriptedSource[T] {
	return &ScriptedSource[T]{pages: pages}
}

// Script appends pages to the script.
func (s *ScriptedSource[T]) Script(pages ...ScriptedPage[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, pages...)
}

// FetchPage implements pager.Source.
func (s *ScriptedSource[T]) FetchPage(ctx context.Context, position, pageSize int) ([]T, error) {
	s.mu.Lock()
	s.calls = append(s.calls, PageCall{Position: position, PageSize: pageSize})
	var page ScriptedPage[T]
	if len(s.pages) > 0 {
		page = s.pages[0]
		s.pages = s.pages[1:]
	}
	s.mu.Unlock()

	if page.Delay > 0 {
		select {
		case <-time.After(page.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if page.Err != nil {
		return nil, page.Err
	}
	return page.Items, nil
}

// CallCount returns the number of FetchPage invocations so far.
func (s *ScriptedSource[T]) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Calls returns a copy of all recorded invocations.
func (s *ScriptedSource[T]) Calls() []PageCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PageCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// Notification kinds recorded by RecordingView.
const (
	EventInserted      = "inserted"
	EventRangeInserted = "range_inserted"
	EventChanged       = "changed"
	EventRemoved       = "removed"
	EventReset         = "reset"
)

// ViewEvent is one recorded view notification.
type ViewEvent struct {
	Kind  string
	Index int
	Start int
	Count int
}

// RecordingView is a controller.View that records every notification
// in delivery order.
type RecordingView struct {
	mu     sync.Mutex
	events []ViewEvent
}

// ItemInserted implements controller.View.
func (v *RecordingView) ItemInserted(index int) {
	v.record(ViewEvent{Kind: EventInserted, Index: index})
}

// RangeInserted implements controller.View.
func (v *RecordingView) RangeInserted(start, count int) {
	v.record(ViewEvent{Kind: EventRangeInserted, Start: start, Count: count})
}

// ItemChanged implements controller.View.
func (v *RecordingView) ItemChanged(index int) {
	v.record(ViewEvent{Kind: EventChanged, Index: index})
}

// ItemRemoved implements controller.View.
func (v *RecordingView) ItemRemoved(index int) {
	v.record(ViewEvent{Kind: EventRemoved, Index: index})
}

// Reset implements controller.View.
func (v *RecordingView) Reset() {
	v.record(ViewEvent{Kind: EventReset})
}

func (v *RecordingView) record(e ViewEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

// Events returns a copy of all recorded notifications.
func (v *RecordingView) Events() []ViewEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ViewEvent, len(v.events))
	copy(out, v.events)
	return out
}

// EventCount returns the number of recorded notifications.
func (v *RecordingView) EventCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.events)
}

// Clear discards all recorded notifications.
func (v *RecordingView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = nil
}

// FakePlaceholder records placeholder toggles.
type FakePlaceholder struct {
	mu    sync.Mutex
	shows int
	hides int
}

// ShowPlaceholder implements pager.Placeholder.
func (p *FakePlaceholder) ShowPlaceholder() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows++
}

// HidePlaceholder implements pager.Placeholder.
func (p *FakePlaceholder) HidePlaceholder() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hides++
}

// Shows returns how many times the placeholder was shown.
func (p *FakePlaceholder) Shows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows
}

// Hides returns how many times the placeholder was hidden.
func (p *FakePlaceholder) Hides() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hides
}
