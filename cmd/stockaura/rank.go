package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stockaura/stockaura/internal/application"
	"github.com/stockaura/stockaura/internal/persistence"
	"github.com/stockaura/stockaura/internal/scan"
)

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Scan a ticker list and rank instruments by composite score",
		RunE:  runRank,
	}
	cmd.Flags().String("targets", "config/targets.txt", "Ticker list file (one per line, optional \"TICKER,Title\")")
	cmd.Flags().Int("top-n", 0, "Override the number of instruments to keep")
	cmd.Flags().String("output", "", "Override the JSON artifact path")
	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("top-n"); v > 0 {
		cfg.Scan.TopN = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Scan.OutputPath = v
	}
	targetsPath, _ := cmd.Flags().GetString("targets")

	targets, err := loadTargets(targetsPath)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets in %s", targetsPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	delay := time.Duration(cfg.Scan.RequestDelay * float64(time.Second))
	runner := scan.NewRunner(
		application.NewAnalyzer(cfg.Engine),
		buildProvider(cfg),
		scan.NewPacer(delay, delay/4),
		scan.Config{
			Period:     cfg.Engine.Period,
			TopN:       cfg.Scan.TopN,
			MaxRetries: cfg.Scan.MaxRetries,
			RetryDelay: time.Duration(cfg.Scan.RetryDelaySecs) * time.Second,
		},
	)

	zlog.Info().Int("targets", len(targets)).Int("top_n", cfg.Scan.TopN).Msg("starting scan")
	ranked, err := runner.Run(ctx, targets)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	artifact := persistence.NewArtifact(ranked, len(targets))
	if err := persistence.WriteJSONAtomic(cfg.Scan.OutputPath, artifact); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	fmt.Printf("Ranked %d of %d instruments, saved to %s\n", len(ranked), len(targets), cfg.Scan.OutputPath)

	if cfg.Storage.PostgresDSN != "" {
		store, err := persistence.NewResultStore(cfg.Storage.PostgresDSN, 30*time.Second)
		if err != nil {
			zlog.Warn().Err(err).Msg("postgres unavailable, artifact only")
			return nil
		}
		defer store.Close()
		if err := store.SaveRun(ctx, artifact); err != nil {
			zlog.Warn().Err(err).Msg("postgres save failed")
		} else {
			zlog.Info().Str("run_id", artifact.RunID).Msg("run persisted")
		}
	}
	return nil
}

// loadTargets parses a ticker list. Blank lines and # comments are skipped;
// an optional comma-separated second field is the display title.
func loadTargets(path string) ([]scan.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets %s: %w", path, err)
	}
	defer f.Close()

	var targets []scan.Target
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ticker, title, _ := strings.Cut(line, ",")
		targets = append(targets, scan.Target{
			Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
			Title:  strings.TrimSpace(title),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read targets %s: %w", path, err)
	}
	return targets, nil
}
