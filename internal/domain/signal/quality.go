package signal

import (
	"github.com/stockaura/stockaura/internal/domain/indicators"
)

// QualityLabel buckets the trade-quality score.
type QualityLabel string

const (
	QualityExcellent QualityLabel = "EXCELLENT"
	QualityGood      QualityLabel = "GOOD"
	QualityFair      QualityLabel = "FAIR"
	QualityPoor      QualityLabel = "POOR"
)

// Quality describes how favorable the current entry is, 0-10. Computed only
// for signals that carry directional content; it grades the entry, not the
// pattern.
type Quality struct {
	Score      float64            `json:"score"`
	Label      QualityLabel       `json:"label"`
	Components map[string]float64 `json:"components"`
}

// QualityInputs are the five component feeds.
type QualityInputs struct {
	Signal        Signal
	Recent        indicators.RecentReturns
	Trend         indicators.TrendDirection
	ZEMA          float64
	ZEMAOK        bool
	Sharpe        float64
	SharpeOK      bool
	AnnualVolPct  float64
	VolOK         bool
	VolumeRatio   float64
	VolumeOK      bool
	VolumeConfirm bool
}

// ScoreQuality sums five independently scored components, each in [0,2],
// capped at 10: multi-timeframe alignment, entry timing, Sharpe tier,
// volatility-band fit, and volume confirmation strength.
func ScoreQuality(in QualityInputs) Quality {
	components := map[string]float64{
		"trend_alignment": alignmentComponent(in.Recent, in.Signal.ShortSide()),
		"entry_timing":    timingComponent(in),
		"sharpe":          sharpeComponent(in),
		"volatility_fit":  volatilityComponent(in),
		"volume_confirm":  volumeComponent(in),
	}
	total := 0.0
	for _, c := range components {
		total += c
	}
	if total > 10 {
		total = 10
	}
	return Quality{Score: total, Label: labelFor(total), Components: components}
}

func labelFor(score float64) QualityLabel {
	switch {
	case score >= 8:
		return QualityExcellent
	case score >= 6:
		return QualityGood
	case score >= 4:
		return QualityFair
	default:
		return QualityPoor
	}
}

// alignmentComponent rewards agreement of the 1m/3m/6m/1y return signs with
// the traded direction: 0.5 points per agreeing horizon.
func alignmentComponent(r indicators.RecentReturns, short bool) float64 {
	score := 0.0
	for _, ret := range []*float64{r.OneMonth, r.ThreeMonth, r.SixMonth, r.OneYear} {
		if ret == nil {
			continue
		}
		if (!short && *ret > 0) || (short && *ret < 0) {
			score += 0.5
		}
	}
	return score
}

// timingComponent grades the z-EMA entry location relative to direction: a
// pullback entry in the traded direction scores best, chasing an extended
// move scores worst. Missing z-EMA is neutral.
func timingComponent(in QualityInputs) float64 {
	if !in.ZEMAOK {
		return 1.0
	}
	z := in.ZEMA
	if in.Signal.ShortSide() {
		z = -z
	}
	switch {
	case z <= -0.5:
		return 2.0 // entering on a dip against an intact trend
	case z <= 0.5:
		return 1.5
	case z <= 1.0:
		return 1.0
	default:
		return 0.5 // extended; poor entry
	}
}

func sharpeComponent(in QualityInputs) float64 {
	if !in.SharpeOK {
		return 0
	}
	s := in.Sharpe
	if in.Signal.ShortSide() {
		s = -s
	}
	switch {
	case s >= 1.5:
		return 2.0
	case s >= 1.0:
		return 1.5
	case s >= 0.5:
		return 1.0
	case s >= 0:
		return 0.5
	default:
		return 0
	}
}

// volatilityComponent prefers the 20-35% annualized band: enough movement to
// pay for friction, not enough to blow through stops.
func volatilityComponent(in QualityInputs) float64 {
	if !in.VolOK {
		return 0
	}
	v := in.AnnualVolPct
	switch {
	case v >= 20 && v <= 35:
		return 2.0
	case v >= 15 && v < 20, v > 35 && v <= 50:
		return 1.0
	default:
		return 0
	}
}

func volumeComponent(in QualityInputs) float64 {
	if !in.VolumeOK {
		return 0
	}
	if in.VolumeConfirm {
		return 2.0
	}
	return 0.5
}
