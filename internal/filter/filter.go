// Package filter selects the visible subset of a static content list by
// category and a case-insensitive search term.
package filter

import (
	"fmt"
	"strings"
)

// All is the category sentinel meaning "no category filter".
const All = "All"

// Item is anything that can be filtered.
type Item interface {
	// ItemCategory is matched exactly against the selected category.
	ItemCategory() string
	// SearchFields are the texts the search term is looked up in.
	SearchFields() []string
}

// Apply returns the items that pass both the category and the search test,
// in their original order. items is never modified.
func Apply[T Item](items []T, category, term string) []T {
	out := make([]T, 0, len(items))
	needle := strings.ToLower(term)
	for _, it := range items {
		if !matchesCategory(it, category) {
			continue
		}
		if !matchesTerm(it, needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesCategory(it Item, category string) bool {
	return category == All || it.ItemCategory() == category
}

func matchesTerm(it Item, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range it.SearchFields() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// EmptyMessage is the text shown when a filter produces no items.
func EmptyMessage(category string) string {
	if category != "" && category != All {
		return fmt.Sprintf("No articles found in the '%s' category.", category)
	}
	return "No articles match your search criteria."
}

// State holds the current selection over a fixed item list and remembers
// the last result.
//
// Selecting a category clears the search term, so a stale term never
// combines with a new category.
type State[T Item] struct {
	items    []T
	category string
	term     string

	cached    []T
	cachedCat string
	cachedQ   string
	valid     bool
}

// NewState starts with category All and an empty term.
func NewState[T Item](items []T) *State[T] {
	return &State[T]{
		items:    items,
		category: All,
	}
}

// SelectCategory switches the category and resets the search term.
func (s *State[T]) SelectCategory(category string) {
	s.category = category
	s.term = ""
}

// SetTerm replaces the search term. The category is kept.
func (s *State[T]) SetTerm(term string) {
	s.term = term
}

// Category returns the selected category.
func (s *State[T]) Category() string { return s.category }

// Term returns the current search term.
func (s *State[T]) Term() string { return s.term }

// Items returns the unfiltered list.
func (s *State[T]) Items() []T { return s.items }

// Result returns the filtered list. The slice is shared with later calls
// that have the same inputs and must not be modified.
func (s *State[T]) Result() []T {
	if s.valid && s.cachedCat == s.category && s.cachedQ == s.term {
		return s.cached
	}
	s.cached = Apply(s.items, s.category, s.term)
	s.cachedCat = s.category
	s.cachedQ = s.term
	s.valid = true
	return s.cached
}

// Empty reports whether the current selection matches nothing.
func (s *State[T]) Empty() bool {
	return len(s.Result()) == 0
}
