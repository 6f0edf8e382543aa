package currency

import "context"

type MockSource struct {
	items []Item
}

func NewMockSource() *MockSource {
	return &MockSource{items: []Item{
		{Name: "Bitcoin", Symbol: "btc", NotInUSA: false, HasTestMode: true},
		{Name: "Ethereum", Symbol: "eth", NotInUSA: false, HasTestMode: true},
		{Name: "Tether", Symbol: "usdt", NotInUSA: false, HasTestMode: false},
		{Name: "USD Coin", Symbol: "usdc", NotInUSA: false, HasTestMode: true},
		{Name: "Binance Coin", Symbol: "bnb", NotInUSA: true, HasTestMode: false},
		{Name: "Cardano", Symbol: "ada", NotInUSA: false, HasTestMode: false},
		{Name: "Solana", Symbol: "sol", NotInUSA: false, HasTestMode: false},
		{Name: "Dogecoin", Symbol: "doge", NotInUSA: false, HasTestMode: false},
		{Name: "Polkadot", Symbol: "dot", NotInUSA: true, HasTestMode: false},
		{Name: "Litecoin", Symbol: "ltc", NotInUSA: false, HasTestMode: true},
		{Name: "Monero", Symbol: "xmr", NotInUSA: true, HasTestMode: false},
		{Name: "Stellar", Symbol: "xlm", NotInUSA: false, HasTestMode: false},
		{Name: "Euro", Symbol: "eur", NotInUSA: false, HasTestMode: true},
		{Name: "Pound Sterling", Symbol: "gbp", NotInUSA: false, HasTestMode: true},
		{Name: "Złoty", Symbol: "pln", NotInUSA: false, HasTestMode: false},
	}}
}

func (m *MockSource) ListCurrencies(ctx context.Context) ([]Item, error) {
	_ = ctx
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}
