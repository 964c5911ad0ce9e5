package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeAccepted(t *testing.T) {
	// annual vol 15.8745% -> daily vol 1% -> stop distance 2.00 at price 100.
	annualVol := 1.0 * math.Sqrt(252)
	plan, ok := Size(100, annualVol, 10000, 0.02)
	require.True(t, ok)

	assert.Equal(t, Accepted, plan.Verdict)
	assert.InDelta(t, 2.0, plan.StopDistance, 1e-9)
	assert.InDelta(t, 98.0, plan.StopLossLong, 1e-9)
	assert.InDelta(t, 102.0, plan.StopLossShort, 1e-9)
	// risk budget 200 / stop 2.00 = 100 shares, cost 10000 = account exactly.
	assert.Equal(t, 100, plan.SuggestedShares)
	assert.InDelta(t, 100.0, plan.CalculatedShares, 1e-9)
	assert.InDelta(t, 200.0, plan.PositionRisk, 1e-9)
}

func TestSizeFloorsShares(t *testing.T) {
	annualVol := 1.0 * math.Sqrt(252) // stop = 2% of price
	plan, ok := Size(30, annualVol, 10000, 0.02)
	require.True(t, ok)

	// 200 / 0.60 = 333.33 -> 333 shares, but 333*30 = 9990 fits.
	assert.Equal(t, Accepted, plan.Verdict)
	assert.Equal(t, 333, plan.SuggestedShares)
	assert.InDelta(t, 333.0*0.6, plan.PositionRisk, 1e-9)
}

func TestSizeUnexecutable(t *testing.T) {
	// Stop distance 400 on a 20000 share price; 2% of a 10000 account is 200,
	// below one share's stop.
	annualVol := 1.0 * math.Sqrt(252)
	plan, ok := Size(20000, annualVol, 10000, 0.02)
	require.True(t, ok)

	assert.Equal(t, Unexecutable, plan.Verdict)
	assert.Equal(t, 0, plan.SuggestedShares)
	assert.InDelta(t, 400.0/0.02, plan.MinAccountSize, 1e-6)
	assert.NotEmpty(t, plan.Note)
}

func TestSizeUnaffordable(t *testing.T) {
	// Very low volatility: the risk budget allows far more shares than the
	// account can pay for.
	annualVol := 0.1 * math.Sqrt(252) // stop = 0.2% of price
	plan, ok := Size(100, annualVol, 10000, 0.02)
	require.True(t, ok)

	// 200 / 0.20 = 1000 shares costing 100000.
	assert.Equal(t, Unaffordable, plan.Verdict)
	assert.Equal(t, 1000, plan.SuggestedShares)
	assert.Equal(t, 100, plan.AffordableShares)
	assert.NotEmpty(t, plan.Note)
}

func TestSizeDegenerateInputs(t *testing.T) {
	_, ok := Size(0, 20, 10000, 0.02)
	assert.False(t, ok)
	_, ok = Size(100, 0, 10000, 0.02)
	assert.False(t, ok)
	_, ok = Size(100, 20, 0, 0.02)
	assert.False(t, ok)
	_, ok = Size(100, 20, 10000, 0)
	assert.False(t, ok)
}

func TestHalveForSpeculative(t *testing.T) {
	p := Plan{SuggestedShares: 10}
	orig := p.HalveForSpeculative()
	assert.Equal(t, 10, orig)
	assert.Equal(t, 5, p.SuggestedShares)

	one := Plan{SuggestedShares: 1}
	orig = one.HalveForSpeculative()
	assert.Equal(t, 1, orig)
	assert.Equal(t, 1, one.SuggestedShares, "halving never drops below one share")

	zero := Plan{SuggestedShares: 0}
	orig = zero.HalveForSpeculative()
	assert.Equal(t, 0, orig)
	assert.Equal(t, 0, zero.SuggestedShares)
}
