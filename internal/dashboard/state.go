// Package dashboard holds the presentation state of the currency grid.
//
// State is a value. Every intent is a method returning a new State, and the
// visible list (Derived) is always recomputed from All and the active
// filters, never edited directly.
package dashboard

import (
	"math/rand/v2"

	"golang.org/x/text/language"

	"coingrid/internal/currency"
)

// FailureMessage is what the user sees for any fetch failure.
const FailureMessage = "Error fetching data"

// Phase is the lifecycle stage of a mounted dashboard.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
	// Detached means the owning UI is gone; all further input is dropped.
	Detached
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Detached:
		return "detached"
	default:
		return "idle"
	}
}

// SortState is the single active sort. At most one field has a direction.
type SortState struct {
	Field     currency.SortField
	Direction currency.Direction
}

type State struct {
	Phase   Phase
	All     []currency.Item
	Filters currency.Filters
	Sort    SortState
	Derived []currency.Item
	Err     error

	locale language.Tag
}

func New() State {
	return State{locale: currency.DefaultLocale}
}

// WithLocale sets the collation locale used by RequestSort.
func (s State) WithLocale(tag language.Tag) State {
	s.locale = tag
	return s
}

// Begin marks the start of the one fetch a mount is allowed.
func (s State) Begin() State {
	if s.Phase != Idle {
		return s
	}
	s.Phase = Loading
	return s
}

// Load installs a successful fetch result.
// Results that arrive outside Loading (e.g. after Unmount) are ignored.
func (s State) Load(items []currency.Item) State {
	if s.Phase != Loading {
		return s
	}
	s.Phase = Ready
	s.All = clone(items)
	s.Err = nil
	return s.derive()
}

// Fail records a fetch failure. Nothing is shown from a partial result.
func (s State) Fail(err error) State {
	if s.Phase != Loading {
		return s
	}
	s.Phase = Failed
	s.Err = err
	s.All = nil
	s.Derived = nil
	return s
}

// Unmount detaches the state from its UI.
func (s State) Unmount() State {
	s.Phase = Detached
	return s
}

// RequestSort sorts All by field. An ascending field flips to descending,
// anything else becomes ascending, and the other field's indicator resets.
func (s State) RequestSort(field currency.SortField) State {
	if s.Phase != Ready {
		return s
	}
	dir := currency.Asc
	if s.SortIndicator(field) == currency.Asc {
		dir = currency.Desc
	}
	s.Sort = SortState{Field: field, Direction: dir}
	s.All = currency.SortLocale(s.All, field, dir, s.locale)
	return s.derive()
}

// ToggleFilter flips a show-only filter.
func (s State) ToggleFilter(flag currency.Flag) State {
	if s.Phase != Ready {
		return s
	}
	s.Filters = s.Filters.Toggle(flag)
	return s.derive()
}

// RequestShuffle reorders All randomly. Sort indicators are left as they were.
// A nil r uses the global source.
func (s State) RequestShuffle(r *rand.Rand) State {
	if s.Phase != Ready {
		return s
	}
	s.All = currency.ShuffleWith(s.All, r)
	return s.derive()
}

// SortIndicator reports the direction shown on field's sort control.
func (s State) SortIndicator(field currency.SortField) currency.Direction {
	if s.Sort.Direction == currency.None || s.Sort.Field != field {
		return currency.None
	}
	return s.Sort.Direction
}

func (s State) FilterActive(flag currency.Flag) bool {
	return s.Filters.Active(flag)
}

// Total is the number of visible items.
func (s State) Total() int { return len(s.Derived) }

// Message is the user-facing error text, empty unless Failed.
func (s State) Message() string {
	if s.Phase != Failed {
		return ""
	}
	return FailureMessage
}

// derive rebuilds Derived from the full list; filters never compound.
func (s State) derive() State {
	s.Derived = currency.FilterAll(s.All, s.Filters)
	return s
}

func clone(items []currency.Item) []currency.Item {
	out := make([]currency.Item, len(items))
	copy(out, items)
	return out
}
