package currency

import (
	"math/rand/v2"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used by Sort.
var DefaultLocale = language.English

// SortField names a string-valued Item field that can be sorted on.
type SortField int

const (
	ByName SortField = iota
	BySymbol
)

func (f SortField) String() string {
	switch f {
	case BySymbol:
		return "symbol"
	default:
		return "name"
	}
}

func (f SortField) value(it Item) string {
	if f == BySymbol {
		return it.Symbol
	}
	return it.Name
}

// Direction is a sort direction. None is the indicator of an unsorted field.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "ascending"
	case Desc:
		return "descending"
	default:
		return "none"
	}
}

// Flag names a boolean Item field that can be used as a show-only filter.
type Flag int

const (
	NotInUSA Flag = iota
	HasTestMode
)

func (f Flag) String() string {
	switch f {
	case HasTestMode:
		return "hasTestMode"
	default:
		return "notInUsa"
	}
}

func (f Flag) holds(it Item) bool {
	switch f {
	case NotInUSA:
		return it.NotInUSA
	case HasTestMode:
		return it.HasTestMode
	default:
		return true
	}
}

// Filters is the set of active show-only toggles.
type Filters struct {
	NotInUSA    bool
	HasTestMode bool
}

// Active reports whether f is switched on.
func (fs Filters) Active(f Flag) bool {
	switch f {
	case NotInUSA:
		return fs.NotInUSA
	case HasTestMode:
		return fs.HasTestMode
	default:
		return false
	}
}

// Toggle returns fs with f flipped.
func (fs Filters) Toggle(f Flag) Filters {
	switch f {
	case NotInUSA:
		fs.NotInUSA = !fs.NotInUSA
	case HasTestMode:
		fs.HasTestMode = !fs.HasTestMode
	}
	return fs
}

// Sort returns a sorted copy of items using DefaultLocale collation.
// Direction None returns items unchanged.
func Sort(items []Item, field SortField, dir Direction) []Item {
	return SortLocale(items, field, dir, DefaultLocale)
}

// SortLocale is Sort with an explicit collation locale.
// The sort is stable; the relative order of exact ties is implementation-defined.
func SortLocale(items []Item, field SortField, dir Direction, tag language.Tag) []Item {
	if dir != Asc && dir != Desc {
		return items
	}
	out := make([]Item, len(items))
	copy(out, items)

	// Collators are not safe for concurrent use; build one per call.
	c := collate.New(tag)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := field.value(out[i]), field.value(out[j])
		if dir == Desc {
			a, b = b, a
		}
		return c.CompareString(a, b) < 0
	})
	return out
}

// Filter keeps the items for which flag holds when active is true.
// When active is false it returns items unchanged.
func Filter(items []Item, flag Flag, active bool) []Item {
	if !active {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if flag.holds(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterAll applies every active toggle in fs in a single pass.
// The result never aliases items.
func FilterAll(items []Item, fs Filters) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if fs.NotInUSA && !it.NotInUSA {
			continue
		}
		if fs.HasTestMode && !it.HasTestMode {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Shuffle returns a randomly reordered copy of items.
func Shuffle(items []Item) []Item {
	return ShuffleWith(items, nil)
}

// ShuffleWith shuffles using r, or the global source when r is nil.
// Each element gets an independent random key and the copy is ordered by key.
func ShuffleWith(items []Item, r *rand.Rand) []Item {
	type keyed struct {
		key  float64
		item Item
	}
	next := rand.Float64
	if r != nil {
		next = r.Float64
	}

	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{key: next(), item: it}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })

	out := make([]Item, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}
