package application

import (
	"github.com/stockaura/stockaura/internal/domain/indicators"
	"github.com/stockaura/stockaura/internal/domain/liquidity"
	"github.com/stockaura/stockaura/internal/domain/momentum"
	"github.com/stockaura/stockaura/internal/domain/position"
	"github.com/stockaura/stockaura/internal/domain/signal"
)

// Instrument is the metadata the data provider supplies alongside bars.
type Instrument struct {
	Ticker       string  `json:"ticker"`
	Title        string  `json:"title,omitempty"`
	CurrentPrice float64 `json:"current,omitempty"`
	MarketCap    float64 `json:"market_cap,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}

// Predictability groups the statistical sub-test outputs and the conviction
// score. Each field is independently optional: nil means the sub-test's
// minimum sample preconditions were unmet, and the score simply did not
// receive that point.
type Predictability struct {
	LjungBoxP        *float64 `json:"ljung_box_pvalue,omitempty"`
	ADFP             *float64 `json:"adf_pvalue,omitempty"`
	Hurst            *float64 `json:"hurst,omitempty"`
	HurstSignificant bool     `json:"hurst_significant"`
	HurstShuffledMean *float64 `json:"hurst_shuffled_mean,omitempty"`
	HurstOOS         *float64 `json:"hurst_oos,omitempty"`
	MomentumCorr     *float64 `json:"momentum_corr,omitempty"`
	MomentumCorrOOS  *float64 `json:"momentum_corr_oos,omitempty"`
	MeanRevUp        *float64 `json:"mean_rev_up,omitempty"`
	MeanRevDown      *float64 `json:"mean_rev_down,omitempty"`
	MeanRevUpOOS     *float64 `json:"mean_rev_up_oos,omitempty"`
	MeanRevDownOOS   *float64 `json:"mean_rev_down_oos,omitempty"`
	VolumeConfirming *bool    `json:"volume_price_confirming,omitempty"`
	Score            int      `json:"score"` // 0-5
}

// Result is the sole externally visible output of one analysis. It is
// JSON-serializable and deterministic for a fixed input series, configuration,
// and shuffle seed.
type Result struct {
	Instrument Instrument `json:"instrument"`
	DataPoints int        `json:"data_points"`
	Period     string     `json:"period"`
	WindowDays int        `json:"window_days"`

	Predictability Predictability `json:"predictability"`
	Stability      *float64       `json:"regime_stability,omitempty"`

	Recent         indicators.RecentReturns  `json:"recent_returns"`
	TrendDirection string                    `json:"trend_direction,omitempty"`
	ZScore         *float64                  `json:"zscore,omitempty"`
	ZEMA           *float64                  `json:"z_ema,omitempty"`
	Risk           *indicators.RiskProfile   `json:"risk,omitempty"`
	DeathCross     *bool                     `json:"golden_cross_short,omitempty"`
	Volume         *momentum.VolumeConfirmation `json:"volume,omitempty"`

	Liquidity liquidity.Assessment `json:"liquidity"`
	Position  *position.Plan       `json:"position,omitempty"`
	// UnhalvedShares is the pre-speculative-halving share count, kept for
	// display when the signal lands in the reduced-conviction tier.
	UnhalvedShares int `json:"unhalved_shares,omitempty"`

	Signal        signal.Signal   `json:"final_signal"`
	Speculative   bool            `json:"speculative"`
	StopLossPrice *float64        `json:"stop_loss_price,omitempty"`
	TradeQuality  *signal.Quality `json:"trade_quality,omitempty"`
	Warning       string          `json:"warning,omitempty"`
}
