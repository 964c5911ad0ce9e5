package momentum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyFromBlocks makes a daily return series whose k-day compounded blocks
// equal the given block returns (each block is one move then k-1 flat days).
func dailyFromBlocks(blocks []float64, k int) []float64 {
	out := make([]float64, 0, len(blocks)*k)
	for _, b := range blocks {
		out = append(out, b)
		for i := 1; i < k; i++ {
			out = append(out, 0)
		}
	}
	return out
}

func TestBlockCorrelationMonotonePositive(t *testing.T) {
	// Block returns rising steadily: each block correlates with its successor.
	blocks := make([]float64, 30)
	for i := range blocks {
		blocks[i] = 0.001 * float64(i)
	}
	r, ok := BlockCorrelation(dailyFromBlocks(blocks, 3), 3)
	require.True(t, ok)
	assert.Greater(t, r, 0.9)
}

func TestBlockCorrelationAlternatingNegative(t *testing.T) {
	blocks := make([]float64, 30)
	for i := range blocks {
		if i%2 == 0 {
			blocks[i] = 0.02
		} else {
			blocks[i] = -0.02
		}
	}
	r, ok := BlockCorrelation(dailyFromBlocks(blocks, 3), 3)
	require.True(t, ok)
	assert.Less(t, r, -0.9)
}

func TestBlockCorrelationTooFewBlocks(t *testing.T) {
	blocks := make([]float64, 19)
	for i := range blocks {
		blocks[i] = 0.001 * float64(i)
	}
	_, ok := BlockCorrelation(dailyFromBlocks(blocks, 3), 3)
	assert.False(t, ok, "19 blocks is below the minimum of 20")
}

func TestBlockCorrelationConstantBlocks(t *testing.T) {
	blocks := make([]float64, 25)
	for i := range blocks {
		blocks[i] = 0.01
	}
	_, ok := BlockCorrelation(dailyFromBlocks(blocks, 3), 3)
	assert.False(t, ok, "constant blocks have no correlation")
}

func TestMeanReversionQuartileConditioning(t *testing.T) {
	// Cycle: big up block, then a down block, small fillers between. The block
	// after every top-quartile extreme is -0.04, after every bottom-quartile
	// extreme is +0.05.
	var blocks []float64
	for i := 0; i < 8; i++ {
		blocks = append(blocks, 0.10, -0.04, 0.001, -0.08, 0.05, -0.001)
	}
	rev, ok := MeanReversion(dailyFromBlocks(blocks, 5), 5)
	require.True(t, ok)
	assert.InDelta(t, -0.04, rev.AfterUp, 1e-9)
	assert.InDelta(t, 0.05, rev.AfterDown, 1e-9)
}

func TestMeanReversionExcludesLastBlock(t *testing.T) {
	// The final block is an extreme with no successor; it must not be counted.
	blocks := []float64{0.10, -0.04, 0.001, -0.08, 0.05, -0.001, 0.002, 0.10}
	rev, ok := MeanReversion(dailyFromBlocks(blocks, 5), 5)
	require.True(t, ok)
	assert.InDelta(t, -0.04, rev.AfterUp, 1e-9)
}

func TestMeanReversionTooFewBlocks(t *testing.T) {
	_, ok := MeanReversion(dailyFromBlocks([]float64{0.1, -0.1, 0.05, -0.05, 0.02}, 5), 5)
	assert.False(t, ok)
}
