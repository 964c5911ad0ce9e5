// Package momentum measures block-return persistence and conditional
// mean reversion after extreme moves, in-sample and out-of-sample.
package momentum

import (
	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/domain/stats"
)

const (
	minMomentumBlocks = 20
	minReversionBlocks = 6
)

// BlockCorrelation partitions daily returns into non-overlapping k-day
// compounded blocks and correlates each block with its successor. Requires
// at least 20 blocks; ok=false otherwise or when the correlation degenerates.
func BlockCorrelation(daily []float64, k int) (float64, bool) {
	blocks := series.BlockReturns(daily, k)
	if len(blocks) < minMomentumBlocks {
		return 0, false
	}
	return stats.Pearson(blocks[:len(blocks)-1], blocks[1:])
}

// Reversion is the conditional next-block behavior after extreme blocks.
type Reversion struct {
	AfterUp   float64 // mean next-block return after a top-quartile block
	AfterDown float64 // mean next-block return after a bottom-quartile block
}

// MeanReversion partitions daily returns into windowDays-sized compounded
// blocks, classifies the top and bottom quartile as extremes, and averages the
// return of the block immediately following each extreme (the last block has
// no successor and is excluded). Requires at least 6 blocks and at least one
// observation on each side.
func MeanReversion(daily []float64, windowDays int) (Reversion, bool) {
	blocks := series.BlockReturns(daily, windowDays)
	if len(blocks) < minReversionBlocks {
		return Reversion{}, false
	}
	q75, ok1 := stats.Percentile(blocks, 75)
	q25, ok2 := stats.Percentile(blocks, 25)
	if !ok1 || !ok2 {
		return Reversion{}, false
	}

	var upNext, downNext []float64
	for i := 0; i < len(blocks)-1; i++ {
		switch {
		case blocks[i] > q75:
			upNext = append(upNext, blocks[i+1])
		case blocks[i] < q25:
			downNext = append(downNext, blocks[i+1])
		}
	}
	if len(upNext) == 0 || len(downNext) == 0 {
		return Reversion{}, false
	}
	up, _ := stats.Mean(upNext)
	down, _ := stats.Mean(downNext)
	return Reversion{AfterUp: up, AfterDown: down}, true
}
