package momentum

import (
	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/domain/stats"
)

// VolumeConfirmation describes whether recent volume backs the medium-term
// price trend.
type VolumeConfirmation struct {
	UpDownRatio float64 `json:"up_down_ratio"` // mean up-day volume / mean down-day volume
	Trend3M     string  `json:"trend_3m"`      // UP, DOWN, or NEUTRAL
	Confirming  bool    `json:"confirming"`
}

// VolumeConfig controls the confirmation window and thresholds.
type VolumeConfig struct {
	Lookback      int     `yaml:"lookback"`        // trading days inspected
	MinSideDays   int     `yaml:"min_side_days"`   // minimum up-days and down-days
	TrendDays     int     `yaml:"trend_days"`      // trend anchor, trading days back
	TrendBand     float64 `yaml:"trend_band"`      // +/- band for a NEUTRAL trend
	ConfirmUpOver float64 `yaml:"confirm_up_over"` // ratio above this confirms an uptrend
	ConfirmDnUnder float64 `yaml:"confirm_dn_under"` // ratio below this confirms a downtrend
}

// DefaultVolumeConfig returns the production confirmation thresholds.
func DefaultVolumeConfig() VolumeConfig {
	return VolumeConfig{
		Lookback:       60,
		MinSideDays:    5,
		TrendDays:      63,
		TrendBand:      0.03,
		ConfirmUpOver:  1.10,
		ConfirmDnUnder: 0.90,
	}
}

// ConfirmVolume checks the most recent bars for trend-consistent volume.
// A NEUTRAL 3-month trend never confirms. ok=false when either side has too
// few days, when the trend anchor is missing, or when down-day volume is zero.
func ConfirmVolume(h *series.History, cfg VolumeConfig) (VolumeConfirmation, bool) {
	if h.Len() < cfg.TrendDays+1 {
		return VolumeConfirmation{}, false
	}
	bars := h.Tail(cfg.Lookback + 1)
	if len(bars) < 2 {
		return VolumeConfirmation{}, false
	}

	var upVols, downVols []float64
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev <= 0 {
			continue
		}
		ret := (bars[i].Close - prev) / prev
		switch {
		case ret > 0:
			upVols = append(upVols, bars[i].Volume)
		case ret < 0:
			downVols = append(downVols, bars[i].Volume)
		}
	}
	if len(upVols) < cfg.MinSideDays || len(downVols) < cfg.MinSideDays {
		return VolumeConfirmation{}, false
	}
	upMean, _ := stats.Mean(upVols)
	downMean, _ := stats.Mean(downVols)
	if downMean <= 0 {
		return VolumeConfirmation{}, false
	}

	anchor := h.Bar(h.Len() - cfg.TrendDays).Close
	if anchor <= 0 {
		return VolumeConfirmation{}, false
	}
	change := (h.Last().Close - anchor) / anchor

	out := VolumeConfirmation{UpDownRatio: upMean / downMean, Trend3M: "NEUTRAL"}
	switch {
	case change > cfg.TrendBand:
		out.Trend3M = "UP"
		out.Confirming = out.UpDownRatio > cfg.ConfirmUpOver
	case change < -cfg.TrendBand:
		out.Trend3M = "DOWN"
		out.Confirming = out.UpDownRatio < cfg.ConfirmDnUnder
	}
	return out, true
}
