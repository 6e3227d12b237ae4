package catalog

import (
	"context"
	"net/url"
	"sync"
)

// NavOptions describes how a navigation should happen.
type NavOptions struct {
	// Replace swaps the current history entry instead of pushing one.
	Replace bool
	// KeepScroll leaves the scroll position where it is.
	KeepScroll bool
}

// Navigator moves the visitor to location.
type Navigator interface {
	Navigate(ctx context.Context, location string, opts NavOptions) error
}

// Refresher re-fetches the server data for the current location.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Synchronizer keeps an in-memory Filters in step with the catalog URL.
// The in-memory record is the source of truth during a session; it is
// re-derived from the URL only through OnURLChange. Calls are serialised,
// so the last Commit decides the final location.
type Synchronizer struct {
	mu      sync.Mutex
	base    string
	nav     Navigator
	refresh Refresher
	filters Filters
}

// NewSynchronizer derives the first record from params. initialSearch, when
// non-empty, overrides the URL's search key for this first derivation only.
func NewSynchronizer(base string, nav Navigator, refresh Refresher, params url.Values, initialSearch string) *Synchronizer {
	return NewSynchronizerFrom(base, nav, refresh, Derive(params, initialSearch))
}

// NewSynchronizerFrom starts from a record the caller already holds.
func NewSynchronizerFrom(base string, nav Navigator, refresh Refresher, f Filters) *Synchronizer {
	if base == "" {
		base = DefaultPath
	}
	return &Synchronizer{base: base, nav: nav, refresh: refresh, filters: f}
}

func (s *Synchronizer) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Commit stores f, replaces the URL with its location without scrolling and
// then asks for a data refresh.
func (s *Synchronizer) Commit(ctx context.Context, f Filters) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, f)
}

// Set replaces one field of the current record and commits the result.
func (s *Synchronizer) Set(ctx context.Context, field Field, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.filters.With(field, value)
	if !ok {
		return Location(s.base, s.filters), &UnknownFieldError{Field: field}
	}
	return s.commitLocked(ctx, next)
}

// Clear resets every field and navigates to the bare catalog path. It does
// not go through the refresh trigger; the navigation itself reloads.
func (s *Synchronizer) Clear(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = Filters{}
	return s.base, s.nav.Navigate(ctx, s.base, NavOptions{})
}

// ToggleSearch clears the search text when there is some; otherwise it only
// refreshes the current results. It reports whether a navigation happened.
func (s *Synchronizer) ToggleSearch(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filters.Search != "" {
		next := s.filters
		next.Search = ""
		loc, err := s.commitLocked(ctx, next)
		return loc, true, err
	}
	loc := Location(s.base, s.filters)
	if s.refresh == nil {
		return loc, false, nil
	}
	return loc, false, s.refresh.Refresh(ctx)
}

// OnURLChange re-derives the record after a navigation the synchronizer did
// not start (back button, pasted link).
func (s *Synchronizer) OnURLChange(params url.Values) Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = Derive(params, "")
	return s.filters
}

func (s *Synchronizer) commitLocked(ctx context.Context, f Filters) (string, error) {
	s.filters = f
	loc := Location(s.base, f)
	if err := s.nav.Navigate(ctx, loc, NavOptions{Replace: true, KeepScroll: true}); err != nil {
		return loc, err
	}
	if s.refresh != nil {
		if err := s.refresh.Refresh(ctx); err != nil {
			return loc, err
		}
	}
	return loc, nil
}

type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return "unknown filter field " + string(e.Field)
}
