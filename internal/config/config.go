// Package config loads the engine and orchestration configuration from YAML,
// applying struct defaults and validating bounds. Every empirically chosen
// threshold in the decision pipeline lives here rather than as a hard
// constant.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration record.
type Config struct {
	Engine   Engine   `yaml:"engine"`
	Provider Provider `yaml:"provider"`
	Scan     Scan     `yaml:"scan"`
	Storage  Storage  `yaml:"storage"`
	Monitor  Monitor  `yaml:"monitor"`
}

// Engine parameterizes one analysis invocation.
type Engine struct {
	Period       string  `yaml:"period" default:"5y"`
	WindowDays   int     `yaml:"window_days" default:"5" validate:"gte=2,lte=63"`
	AccountSize  float64 `yaml:"account_size" default:"10000" validate:"gt=0"`
	RiskPerTrade float64 `yaml:"risk_per_trade" default:"0.02" validate:"gt=0,lte=0.5"`
	TrainFrac    float64 `yaml:"train_fraction" default:"0.7" validate:"gt=0.5,lt=1"`
	Seed         int64   `yaml:"seed" default:"42"`
	MinBars      int     `yaml:"min_bars" default:"5" validate:"gte=2"`

	Hurst      Hurst      `yaml:"hurst"`
	Momentum   Momentum   `yaml:"momentum"`
	Volume     Volume     `yaml:"volume"`
	Liquidity  Liquidity  `yaml:"liquidity"`
	Signal     Signal     `yaml:"signal"`
	Stability  Stability  `yaml:"stability"`
	TrendBand  float64    `yaml:"trend_band" default:"0.05" validate:"gt=0,lt=1"`
	ZWindow    int        `yaml:"z_window" default:"20" validate:"gte=5"`
}

// Hurst parameterizes the DFA estimator and its shuffle baseline.
type Hurst struct {
	MinBox             int     `yaml:"min_box" default:"4" validate:"gte=2"`
	MaxBox             int     `yaml:"max_box" default:"0"` // 0 = series length / 4
	NScales            int     `yaml:"n_scales" default:"20" validate:"gte=4"`
	Shuffles           int     `yaml:"shuffles" default:"50" validate:"gte=0"`
	ShufflesOOS        int     `yaml:"shuffles_oos" default:"25" validate:"gte=0"`
	SigmaThreshold     float64 `yaml:"sigma_threshold" default:"1.5" validate:"gt=0"`
	TrendingAbove      float64 `yaml:"trending_above" default:"0.55"`
	MeanRevertingBelow float64 `yaml:"mean_reverting_below" default:"0.45"`
}

// Momentum parameterizes the block-return estimators.
type Momentum struct {
	BlockDays     int     `yaml:"block_days" default:"3" validate:"gte=2"`
	CorrThreshold float64 `yaml:"corr_threshold" default:"0.08" validate:"gt=0"`
	RevThreshold  float64 `yaml:"reversion_threshold" default:"0.003" validate:"gt=0"`
}

// Volume parameterizes volume-price confirmation.
type Volume struct {
	Lookback       int     `yaml:"lookback" default:"60"`
	MinSideDays    int     `yaml:"min_side_days" default:"5"`
	TrendDays      int     `yaml:"trend_days" default:"63"`
	TrendBand      float64 `yaml:"trend_band" default:"0.03"`
	ConfirmUpOver  float64 `yaml:"confirm_up_over" default:"1.10"`
	ConfirmDnUnder float64 `yaml:"confirm_dn_under" default:"0.90"`
}

// Liquidity parameterizes the friction model.
type Liquidity struct {
	Window            int     `yaml:"window" default:"30" validate:"gte=5"`
	SlippageFraction  float64 `yaml:"slippage_fraction" default:"0.05"`
	FallbackSlippage  float64 `yaml:"fallback_slippage" default:"0.0005"`
	TransactionCost   float64 `yaml:"transaction_cost" default:"0.001"`
	MaxPositionVsVol  float64 `yaml:"max_position_vs_volume" default:"0.02"`
	EdgeFrictionRatio float64 `yaml:"edge_friction_ratio" default:"3"`
}

// Signal parameterizes the state machine guards.
type Signal struct {
	MinScore       int     `yaml:"min_score" default:"2" validate:"gte=0,lte=5"`
	MinStability   float64 `yaml:"min_stability" default:"0.5" validate:"gte=0,lte=1"`
	MomentumFloor  float64 `yaml:"momentum_floor" default:"0.08"`
	StrongMomentum float64 `yaml:"strong_momentum" default:"0.15"`
	ZOverbought    float64 `yaml:"z_overbought" default:"1.0"`
	ZPullback      float64 `yaml:"z_pullback" default:"-0.5"`
}

// Stability parameterizes the regime-stability evaluator.
type Stability struct {
	WeakCorrFloor float64 `yaml:"weak_corr_floor" default:"0.05"`
	HoldMagnitude float64 `yaml:"hold_magnitude" default:"0.05"`
}

// Provider configures the market-data client.
type Provider struct {
	BaseURL        string  `yaml:"base_url" default:"https://stooq.com/q/d/l"`
	TimeoutSeconds int     `yaml:"timeout_seconds" default:"15" validate:"gt=0"`
	RequestsPerSec float64 `yaml:"requests_per_sec" default:"1" validate:"gt=0"`
	Burst          int     `yaml:"burst" default:"1" validate:"gte=1"`
	Redis          Redis   `yaml:"redis"`
}

// Redis configures the optional bar cache.
type Redis struct {
	Enabled    bool   `yaml:"enabled" default:"false"`
	Addr       string `yaml:"addr" default:"localhost:6379"`
	DB         int    `yaml:"db" default:"0"`
	TTLMinutes int    `yaml:"ttl_minutes" default:"720"`
}

// Scan configures the batch ranker.
type Scan struct {
	TopN           int     `yaml:"top_n" default:"50" validate:"gte=1"`
	MaxRetries     int     `yaml:"max_retries" default:"3" validate:"gte=0"`
	RetryDelaySecs int     `yaml:"retry_delay_secs" default:"5" validate:"gte=0"`
	RequestDelay   float64 `yaml:"request_delay_secs" default:"1"`
	OutputPath     string  `yaml:"output_path" default:"out/top_instruments.json"`
}

// Storage configures the optional postgres result store.
type Storage struct {
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Monitor configures the HTTP monitoring server.
type Monitor struct {
	Addr string `yaml:"addr" default:":8087"`
}

// Default returns the configuration with every field at its default.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file over the defaults. A missing path yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks bounds on every tagged field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
