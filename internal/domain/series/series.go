// Package series holds the raw price history types and the derived return
// sequences every estimator consumes. Bars are immutable once ingested;
// everything downstream works on copies or read-only views.
package series

import (
	"fmt"
	"time"
)

// PriceBar is one daily OHLCV observation.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// History is an ordered run of daily bars, ascending by date, no duplicates.
type History struct {
	bars []PriceBar
}

// NewHistory validates ordering and returns an immutable history.
func NewHistory(bars []PriceBar) (*History, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("empty bar sequence")
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("bars out of order at index %d: %s !> %s",
				i, bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	own := make([]PriceBar, len(bars))
	copy(own, bars)
	return &History{bars: own}, nil
}

// Len returns the number of bars.
func (h *History) Len() int { return len(h.bars) }

// Bar returns the bar at index i.
func (h *History) Bar(i int) PriceBar { return h.bars[i] }

// Bars returns a copy of the full bar slice.
func (h *History) Bars() []PriceBar {
	out := make([]PriceBar, len(h.bars))
	copy(out, h.bars)
	return out
}

// Last returns the most recent bar.
func (h *History) Last() PriceBar { return h.bars[len(h.bars)-1] }

// Closes returns the close prices in order.
func (h *History) Closes() []float64 {
	out := make([]float64, len(h.bars))
	for i, b := range h.bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the daily volumes in order.
func (h *History) Volumes() []float64 {
	out := make([]float64, len(h.bars))
	for i, b := range h.bars {
		out[i] = b.Volume
	}
	return out
}

// Tail returns the most recent n bars (all bars when n exceeds the history).
func (h *History) Tail(n int) []PriceBar {
	if n >= len(h.bars) {
		return h.Bars()
	}
	out := make([]PriceBar, n)
	copy(out, h.bars[len(h.bars)-n:])
	return out
}

// DailyReturns derives simple daily returns (close-to-close).
// Length is Len()-1. Bars with a non-positive previous close are skipped.
func (h *History) DailyReturns() []float64 {
	out := make([]float64, 0, len(h.bars)-1)
	for i := 1; i < len(h.bars); i++ {
		prev := h.bars[i-1].Close
		if prev <= 0 {
			continue
		}
		out = append(out, (h.bars[i].Close-prev)/prev)
	}
	return out
}

// BlockReturns compounds consecutive non-overlapping k-day blocks of daily
// returns into block returns: prod(1+r)-1. A trailing partial block is dropped.
func BlockReturns(daily []float64, k int) []float64 {
	if k <= 0 || len(daily) < k {
		return nil
	}
	n := len(daily) / k
	out := make([]float64, 0, n)
	for b := 0; b < n; b++ {
		acc := 1.0
		for i := b * k; i < (b+1)*k; i++ {
			acc *= 1 + daily[i]
		}
		out = append(out, acc-1)
	}
	return out
}

// Split is a read-only partition of a sequence into a training prefix and a
// held-out test suffix. The boundary is fixed by index, never by date.
type Split struct {
	Train []float64
	Test  []float64
}

// SplitAt partitions values at floor(frac*N), preserving order. Train and Test
// are views over a private copy; together they reconstruct the input exactly.
func SplitAt(values []float64, frac float64) Split {
	own := make([]float64, len(values))
	copy(own, values)
	idx := int(float64(len(own)) * frac)
	if idx < 0 {
		idx = 0
	}
	if idx > len(own) {
		idx = len(own)
	}
	return Split{Train: own[:idx], Test: own[idx:]}
}
