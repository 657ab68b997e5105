package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Juskocode/QDSMarketTool/internal/app"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the yaml configuration file")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Single evaluation cycle; the polling cadence is cron's concern
	if err := bootstrap.Run(ctx); err != nil {
		slog.Error("❌ Run failed", slog.Any("error", err))
		os.Exit(2)
	}
}
