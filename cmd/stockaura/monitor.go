package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockaura/stockaura/internal/monitor"
)

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Serve health, metrics and latest scan results over HTTP",
		RunE:  runMonitor,
	}
	cmd.Flags().String("addr", "", "Listen address override")
	return cmd
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	addr := cfg.Monitor.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return monitor.NewServer(addr, cfg.Scan.OutputPath).Run(ctx)
}
