//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"coingrid/internal/currency"
	"coingrid/internal/dashboard"
)

// Exercises coingrid against the live listing API.
//
// Run with:
//
//	go test -tags=integration ./... -run Integration
//
// COINGRID_URL overrides the endpoint.
func TestIntegrationLiveListing(t *testing.T) {
	src := currency.NewHTTPSource(os.Getenv("COINGRID_URL"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	items, err := src.ListCurrencies(ctx)
	if err != nil {
		t.Fatalf("list currencies: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected at least one currency")
	}

	s := dashboard.New().Begin().Load(items)
	s = s.RequestSort(currency.ByName).ToggleFilter(currency.HasTestMode)
	for _, it := range s.Derived {
		if !it.HasTestMode {
			t.Fatalf("filter leaked %+v", it)
		}
	}
}
