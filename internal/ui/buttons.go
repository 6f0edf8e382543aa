package ui

import (
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/key"

	"coingrid/internal/currency"
	"coingrid/internal/dashboard"
)

type indicator int

const (
	indicatorPlain indicator = iota
	indicatorSortNone
	indicatorSortAsc
	indicatorSortDesc
	indicatorOff
	indicatorOn
)

func (i indicator) icon() string {
	switch i {
	case indicatorSortAsc:
		return "↑"
	case indicatorSortDesc:
		return "↓"
	case indicatorSortNone:
		return "⇅"
	default:
		return ""
	}
}

func (i indicator) active() bool {
	return i == indicatorSortAsc || i == indicatorSortDesc || i == indicatorOn
}

// button is one control in the toolbar: a label, what it currently shows,
// the key that fires it and the intent it dispatches.
type button struct {
	label     string
	binding   key.Binding
	indicator func(dashboard.State) indicator
	activate  func(dashboard.State) dashboard.State
}

func (b button) state(s dashboard.State) indicator {
	if b.indicator == nil {
		return indicatorPlain
	}
	return b.indicator(s)
}

func sortIndicator(field currency.SortField) func(dashboard.State) indicator {
	return func(s dashboard.State) indicator {
		switch s.SortIndicator(field) {
		case currency.Asc:
			return indicatorSortAsc
		case currency.Desc:
			return indicatorSortDesc
		default:
			return indicatorSortNone
		}
	}
}

func filterIndicator(flag currency.Flag) func(dashboard.State) indicator {
	return func(s dashboard.State) indicator {
		if s.FilterActive(flag) {
			return indicatorOn
		}
		return indicatorOff
	}
}

func newButtons(k keyMap, rng *rand.Rand) []button {
	return []button{
		{
			label:     "Name",
			binding:   k.SortName,
			indicator: sortIndicator(currency.ByName),
			activate:  func(s dashboard.State) dashboard.State { return s.RequestSort(currency.ByName) },
		},
		{
			label:     "Symbol",
			binding:   k.SortSymbol,
			indicator: sortIndicator(currency.BySymbol),
			activate:  func(s dashboard.State) dashboard.State { return s.RequestSort(currency.BySymbol) },
		},
		{
			label:    "Shuffle",
			binding:  k.Shuffle,
			activate: func(s dashboard.State) dashboard.State { return s.RequestShuffle(rng) },
		},
		{
			label:     "USA Only",
			binding:   k.FilterUSA,
			indicator: filterIndicator(currency.NotInUSA),
			activate:  func(s dashboard.State) dashboard.State { return s.ToggleFilter(currency.NotInUSA) },
		},
		{
			label:     "Test Mode",
			binding:   k.FilterTestMode,
			indicator: filterIndicator(currency.HasTestMode),
			activate:  func(s dashboard.State) dashboard.State { return s.ToggleFilter(currency.HasTestMode) },
		},
	}
}
