package main

import (
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stockaura/stockaura/internal/config"
	"github.com/stockaura/stockaura/internal/log"
	"github.com/stockaura/stockaura/internal/provider"
)

const (
	appName = "StockAura"
	version = "v1.0.0"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "stockaura",
		Short:   appName + " - statistical predictability scanner for stocks",
		Long:    "StockAura runs regime, momentum and liquidity diagnostics over daily bars and turns them into a sized trading signal",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			log.Setup(level)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (defaults apply when omitted)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newMonitorCmd())

	if err := rootCmd.Execute(); err != nil {
		zlog.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// buildProvider assembles the market-data client, wrapping it in the redis
// bar cache when enabled.
func buildProvider(cfg *config.Config) provider.BarProvider {
	var bars provider.BarProvider = provider.NewHTTPProvider(provider.HTTPConfig{
		BaseURL:        cfg.Provider.BaseURL,
		Timeout:        time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		RequestsPerSec: cfg.Provider.RequestsPerSec,
		Burst:          cfg.Provider.Burst,
	})

	if cfg.Provider.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Provider.Redis.Addr,
			DB:   cfg.Provider.Redis.DB,
		})
		ttl := time.Duration(cfg.Provider.Redis.TTLMinutes) * time.Minute
		bars = provider.NewCachedProvider(bars, rdb, ttl)
		zlog.Info().Str("addr", cfg.Provider.Redis.Addr).Msg("bar cache enabled")
	}
	return bars
}
