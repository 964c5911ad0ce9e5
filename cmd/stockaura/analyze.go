package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stockaura/stockaura/internal/application"
	"github.com/stockaura/stockaura/internal/report"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze TICKER [TICKER...]",
		Short: "Run the full diagnostic suite on one or more tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().String("period", "", "History period override (1y, 2y, 5y, 10y, max)")
	cmd.Flags().Float64("account", 0, "Account size override")
	cmd.Flags().Float64("risk", 0, "Risk-per-trade fraction override")
	cmd.Flags().Bool("json", false, "Emit the raw result record instead of the narration")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("period"); v != "" {
		cfg.Engine.Period = v
	}
	if v, _ := cmd.Flags().GetFloat64("account"); v > 0 {
		cfg.Engine.AccountSize = v
	}
	if v, _ := cmd.Flags().GetFloat64("risk"); v > 0 {
		cfg.Engine.RiskPerTrade = v
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bars := buildProvider(cfg)
	analyzer := application.NewAnalyzer(cfg.Engine)

	for i, ticker := range args {
		if i > 0 {
			fmt.Println()
		}
		fetchCtx, fetchCancel := context.WithTimeout(ctx, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second*2)
		history, meta, err := bars.History(fetchCtx, ticker, cfg.Engine.Period)
		fetchCancel()
		if err != nil {
			zlog.Error().Err(err).Str("ticker", ticker).Msg("fetch failed")
			continue
		}

		res, err := analyzer.Analyze(history, application.Instrument{
			Ticker:       meta.Ticker,
			Title:        meta.Title,
			CurrentPrice: meta.CurrentPrice,
			MarketCap:    meta.MarketCap,
			Currency:     meta.Currency,
		})
		if err != nil {
			zlog.Error().Err(err).Str("ticker", ticker).Str("kind", string(application.KindOf(err))).Msg("analysis failed")
			continue
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		report.Write(os.Stdout, res)
	}
	return ctx.Err()
}
