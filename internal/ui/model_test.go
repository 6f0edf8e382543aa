package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"coingrid/internal/config"
	"coingrid/internal/currency"
	"coingrid/internal/dashboard"
)

type fakeSource struct {
	items []currency.Item
	err   error
	calls int
}

func (f *fakeSource) ListCurrencies(ctx context.Context) ([]currency.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scenarioItems() []currency.Item {
	return []currency.Item{
		{Name: "Ether", Symbol: "eth", HasTestMode: true},
		{Name: "Bitcoin", Symbol: "btc", NotInUSA: true},
		{Name: "Cardano", Symbol: "ada"},
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func itemNames(items []currency.Item) []string {
	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.Name)
	}
	return got
}

// loaded runs the mount's fetch and feeds the result back into Update.
func loaded(t *testing.T, src currency.Source, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	m := NewModel(config.Default(), src, opts...)
	msg := m.fetchCmd()()
	updated, _ := m.Update(msg)
	m = updated.(Model)
	updated, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func TestModel_fetchOnMount(t *testing.T) {
	fs := &fakeSource{items: scenarioItems()}
	m := NewModel(config.Default(), fs, WithLogger(quietLogger()))
	if m.State().Phase != dashboard.Loading {
		t.Fatalf("expected loading on mount, got %s", m.State().Phase)
	}
	if m.Init() == nil {
		t.Fatalf("expected Init to return the fetch cmd")
	}

	msg, ok := m.fetchCmd()().(currenciesMsg)
	if !ok {
		t.Fatalf("expected currenciesMsg")
	}
	if msg.mount != m.mount {
		t.Fatalf("mount mismatch: %d vs %d", msg.mount, m.mount)
	}
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd != nil {
		t.Fatalf("expected no follow-up fetch")
	}
	if m.State().Phase != dashboard.Ready {
		t.Fatalf("expected ready, got %s", m.State().Phase)
	}
	if fs.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fs.calls)
	}
}

func TestModel_keysDispatchIntents(t *testing.T) {
	tests := []struct {
		name  string
		keys  []rune
		want  []string
		total int
	}{
		{name: "no intents", keys: nil, want: []string{"Ether", "Bitcoin", "Cardano"}, total: 3},
		{name: "sort name asc", keys: []rune{'n'}, want: []string{"Bitcoin", "Cardano", "Ether"}, total: 3},
		{name: "sort name desc", keys: []rune{'n', 'n'}, want: []string{"Ether", "Cardano", "Bitcoin"}, total: 3},
		{name: "sort symbol asc", keys: []rune{'s'}, want: []string{"Cardano", "Bitcoin", "Ether"}, total: 3},
		{name: "usa only filter", keys: []rune{'u'}, want: []string{"Bitcoin"}, total: 1},
		{name: "test mode filter", keys: []rune{'t'}, want: []string{"Ether"}, total: 1},
		{name: "both filters", keys: []rune{'u', 't'}, want: []string{}, total: 0},
		{name: "filter toggled off", keys: []rune{'u', 'u'}, want: []string{"Ether", "Bitcoin", "Cardano"}, total: 3},
		{name: "sort then filter", keys: []rune{'n', 't', 't'}, want: []string{"Bitcoin", "Cardano", "Ether"}, total: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, &fakeSource{items: scenarioItems()})
			for _, k := range tt.keys {
				updated, _ := m.Update(keyPress(k))
				m = updated.(Model)
			}
			got := itemNames(m.State().Derived)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("names mismatch\n got: %v\nwant: %v", got, tt.want)
			}
			if m.State().Total() != tt.total {
				t.Fatalf("total: got %d want %d", m.State().Total(), tt.total)
			}
		})
	}
}

func TestModel_shuffleKey(t *testing.T) {
	items := make([]currency.Item, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, currency.Item{Name: fmt.Sprintf("coin-%02d", i), Symbol: fmt.Sprintf("c%02d", i)})
	}
	m := loaded(t, &fakeSource{items: items}, WithRand(rand.New(rand.NewPCG(1, 1))))

	updated, _ := m.Update(keyPress('x'))
	m = updated.(Model)

	got := itemNames(m.State().Derived)
	if reflect.DeepEqual(got, itemNames(items)) {
		t.Fatalf("expected shuffle to reorder the list")
	}
	if len(got) != len(items) {
		t.Fatalf("shuffle changed the number of items: %d", len(got))
	}
}

func TestModel_buttonIndicators(t *testing.T) {
	m := loaded(t, &fakeSource{items: scenarioItems()})

	indicators := func() []indicator {
		out := make([]indicator, 0, len(m.buttons))
		for _, b := range m.buttons {
			out = append(out, b.state(m.State()))
		}
		return out
	}

	want := []indicator{indicatorSortNone, indicatorSortNone, indicatorPlain, indicatorOff, indicatorOff}
	if got := indicators(); !reflect.DeepEqual(got, want) {
		t.Fatalf("initial indicators: got %v want %v", got, want)
	}

	for _, k := range []rune{'n', 's', 's', 'u'} {
		updated, _ := m.Update(keyPress(k))
		m = updated.(Model)
	}
	want = []indicator{indicatorSortNone, indicatorSortDesc, indicatorPlain, indicatorOn, indicatorOff}
	if got := indicators(); !reflect.DeepEqual(got, want) {
		t.Fatalf("indicators after intents: got %v want %v", got, want)
	}
}

func TestModel_fetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	src := currency.NewHTTPSource(srv.URL)
	src.Logger = quietLogger()
	m := loaded(t, src, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	st := m.State()
	if st.Phase != dashboard.Failed {
		t.Fatalf("expected failed, got %s", st.Phase)
	}
	if len(st.Derived) != 0 {
		t.Fatalf("expected empty derived view, got %v", st.Derived)
	}
	if !errors.Is(st.Err, currency.ErrHTTP) {
		t.Fatalf("expected ErrHTTP to be kept for logging, got %v", st.Err)
	}

	view := m.View()
	if !strings.Contains(view, dashboard.FailureMessage) {
		t.Fatalf("expected failure message in view:\n%s", view)
	}
	if strings.Contains(view, "upstream exploded") {
		t.Fatalf("raw error detail leaked into the view:\n%s", view)
	}
	for _, want := range []string{"level=ERROR", "fetching currencies", "upstream exploded", "500"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logged failure:\n%s", want, logs.String())
		}
	}

	// Intents do nothing once failed.
	updated, _ := m.Update(keyPress('n'))
	if got := updated.(Model).State(); got.Phase != dashboard.Failed {
		t.Fatalf("expected failed to persist, got %s", got.Phase)
	}
}

func TestModel_staleResultsDropped(t *testing.T) {
	old := NewModel(config.Default(), &fakeSource{items: scenarioItems()}, WithLogger(quietLogger()))
	staleMsg := old.fetchCmd()()

	m := NewModel(config.Default(), &fakeSource{err: errors.New("never used")}, WithLogger(quietLogger()))
	updated, _ := m.Update(staleMsg)
	m = updated.(Model)
	if m.State().Phase != dashboard.Loading {
		t.Fatalf("result from another mount must be ignored, got %s", m.State().Phase)
	}
}

func TestModel_resultAfterQuitDropped(t *testing.T) {
	m := NewModel(config.Default(), &fakeSource{items: scenarioItems()}, WithLogger(quietLogger()))
	pending := m.fetchCmd()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(Model)
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if m.State().Phase != dashboard.Detached {
		t.Fatalf("expected detached after quit, got %s", m.State().Phase)
	}

	updated, _ = m.Update(pending())
	m = updated.(Model)
	if m.State().Phase != dashboard.Detached || len(m.State().All) != 0 {
		t.Fatalf("late result must not be written after teardown: %+v", m.State())
	}
}

func TestModel_viewPlaceholders(t *testing.T) {
	size := tea.WindowSizeMsg{Width: 100, Height: 20}

	m := NewModel(config.Default(), &fakeSource{}, WithLogger(quietLogger()))
	if m.View() != "" {
		t.Fatalf("expected empty view before first resize")
	}
	updated, _ := m.Update(size)
	m = updated.(Model)
	if v := m.View(); !strings.Contains(v, "Loading...") || !strings.Contains(v, "Total: 0") {
		t.Fatalf("expected loading placeholder:\n%s", v)
	}

	m = loaded(t, &fakeSource{items: []currency.Item{}})
	if v := m.View(); !strings.Contains(v, "No currencies") {
		t.Fatalf("expected empty placeholder:\n%s", v)
	}

	m = loaded(t, &fakeSource{items: scenarioItems()})
	v := m.View()
	for _, want := range []string{"Total: 3", "Bitcoin", "btc", "Ether", "Cardano", "Name ⇅", "USA Only", "Test Mode"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected %q in view:\n%s", want, v)
		}
	}

	updated, _ = m.Update(keyPress('n'))
	if v := updated.(Model).View(); !strings.Contains(v, "Name ↑") {
		t.Fatalf("expected ascending indicator:\n%s", v)
	}
}

func TestModel_scrollClamped(t *testing.T) {
	m := loaded(t, &fakeSource{items: scenarioItems()})
	for i := 0; i < 10; i++ {
		updated, _ := m.Update(keyPress('j'))
		m = updated.(Model)
	}
	if m.offset != 0 {
		t.Fatalf("three items fit on one row; offset should stay 0, got %d", m.offset)
	}
	updated, _ := m.Update(keyPress('k'))
	if updated.(Model).offset != 0 {
		t.Fatalf("offset must not go negative")
	}
}

func TestModel_sortUsesConfiguredLocale(t *testing.T) {
	items := []currency.Item{{Name: "Åland", Symbol: "ax"}, {Name: "Zeta", Symbol: "z"}, {Name: "Alfa", Symbol: "a"}}

	tests := []struct {
		locale string
		want   []string
	}{
		{locale: "sv", want: []string{"Alfa", "Zeta", "Åland"}},
		{locale: "en", want: []string{"Åland", "Alfa", "Zeta"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.locale, func(t *testing.T) {
			cfg := config.Default()
			cfg.UI.Locale = tt.locale
			m := NewModel(cfg, &fakeSource{items: items}, WithLogger(quietLogger()))
			updated, _ := m.Update(m.fetchCmd()())
			updated, _ = updated.(Model).Update(keyPress('n'))

			got := itemNames(updated.(Model).State().Derived)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("names mismatch\n got: %v\nwant: %v", got, tt.want)
			}
		})
	}
}

func TestModel_invalidLocaleFallsBack(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.Default()
	cfg.UI.Locale = "not a locale!!"
	m := NewModel(cfg, &fakeSource{items: scenarioItems()}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if !strings.Contains(logs.String(), "invalid locale") {
		t.Fatalf("expected a warning for the bad locale:\n%s", logs.String())
	}

	updated, _ := m.Update(m.fetchCmd()())
	updated, _ = updated.(Model).Update(keyPress('n'))
	got := itemNames(updated.(Model).State().Derived)
	want := []string{"Bitcoin", "Cardano", "Ether"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("names mismatch\n got: %v\nwant: %v", got, want)
	}
}
