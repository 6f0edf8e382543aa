package currency

import "context"

// Item is the display model for a single supported currency.
// Every field is always set; absent upstream values collapse to their zero value.
type Item struct {
	Name        string
	Symbol      string
	NotInUSA    bool
	HasTestMode bool
}

// Source is the interface the dashboard depends on.
//
// Keep it narrow: the UI shouldn't know about transport details.
type Source interface {
	ListCurrencies(ctx context.Context) ([]Item, error)
}
