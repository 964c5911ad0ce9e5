// Package provider retrieves daily bars and instrument metadata from the
// external market-data service. The statistical core never touches the
// network; everything here happens before an analysis is invoked.
package provider

import (
	"context"
	"strings"

	"github.com/stockaura/stockaura/internal/domain/series"
)

// Meta is the instrument metadata delivered alongside bars.
type Meta struct {
	Ticker       string  `json:"ticker"`
	Title        string  `json:"title,omitempty"`
	CurrentPrice float64 `json:"current,omitempty"`
	MarketCap    float64 `json:"market_cap,omitempty"`
	Currency     string  `json:"currency"`
}

// BarProvider supplies one instrument's daily history for a lookback period
// label ("1y", "5y", ...).
type BarProvider interface {
	History(ctx context.Context, ticker, period string) (*series.History, Meta, error)
}

// exchange ticker suffix -> settlement currency. Unknown or absent suffixes
// default to USD.
var suffixCurrency = map[string]string{
	"T":   "JPY",
	"NYB": "",
	"CO":  "DKK",
	"L":   "GBP or GBX",
	"DE":  "EUR",
	"PA":  "EUR",
}

// CurrencyFor derives the currency code from a ticker's exchange suffix.
func CurrencyFor(ticker string) string {
	parts := strings.Split(ticker, ".")
	if len(parts) != 2 {
		return "USD"
	}
	if cur, ok := suffixCurrency[strings.ToUpper(parts[1])]; ok {
		return cur
	}
	return "USD"
}
