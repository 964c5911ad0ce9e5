package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bars(closes ...float64) []PriceBar {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]PriceBar, len(closes))
	for i, c := range closes {
		out[i] = PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c, High: c, Low: c, Close: c,
			Volume: 1000,
		}
	}
	return out
}

func TestNewHistoryRejectsUnorderedBars(t *testing.T) {
	b := bars(100, 101, 102)
	b[2].Date = b[0].Date
	_, err := NewHistory(b)
	require.Error(t, err)

	_, err = NewHistory(nil)
	require.Error(t, err)
}

func TestNewHistoryCopiesInput(t *testing.T) {
	b := bars(100, 101)
	h, err := NewHistory(b)
	require.NoError(t, err)

	b[0].Close = 999
	assert.Equal(t, 100.0, h.Bar(0).Close)
}

func TestDailyReturns(t *testing.T) {
	h, err := NewHistory(bars(100, 110, 99))
	require.NoError(t, err)

	r := h.DailyReturns()
	require.Len(t, r, 2)
	assert.InDelta(t, 0.10, r[0], 1e-12)
	assert.InDelta(t, -0.10, r[1], 1e-12)
}

func TestDailyReturnsSkipsNonPositivePrevClose(t *testing.T) {
	h, err := NewHistory(bars(100, 0, 50, 55))
	require.NoError(t, err)

	r := h.DailyReturns()
	require.Len(t, r, 2)
	assert.InDelta(t, -1.0, r[0], 1e-12) // 100 -> 0
	assert.InDelta(t, 0.10, r[1], 1e-12) // 50 -> 55
}

func TestBlockReturnsCompoundsAndDropsPartial(t *testing.T) {
	daily := []float64{0.01, 0.02, -0.01, 0.03, 0.00, 0.01, 0.05}
	blocks := BlockReturns(daily, 3)
	require.Len(t, blocks, 2) // trailing 0.05 dropped

	want0 := 1.01*1.02*0.99 - 1
	want1 := 1.03*1.00*1.01 - 1
	assert.InDelta(t, want0, blocks[0], 1e-12)
	assert.InDelta(t, want1, blocks[1], 1e-12)
}

func TestBlockReturnsDegenerate(t *testing.T) {
	assert.Nil(t, BlockReturns([]float64{0.01, 0.02}, 3))
	assert.Nil(t, BlockReturns([]float64{0.01}, 0))
}

func TestSplitAtIndexBoundary(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i)
	}

	s := SplitAt(values, 0.7)
	require.Len(t, s.Train, 7)
	require.Len(t, s.Test, 3)
	assert.Equal(t, 6.0, s.Train[6])
	assert.Equal(t, 7.0, s.Test[0])

	// Together they reconstruct the input exactly.
	whole := append(append([]float64{}, s.Train...), s.Test...)
	assert.Equal(t, values, whole)
}

func TestSplitAtDetachedFromCaller(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	s := SplitAt(values, 0.5)
	values[0] = 99
	assert.Equal(t, 1.0, s.Train[0])
}

func TestTail(t *testing.T) {
	h, err := NewHistory(bars(1, 2, 3, 4, 5))
	require.NoError(t, err)

	tail := h.Tail(2)
	require.Len(t, tail, 2)
	assert.Equal(t, 4.0, tail[0].Close)
	assert.Equal(t, 5.0, tail[1].Close)

	assert.Len(t, h.Tail(100), 5)
}
