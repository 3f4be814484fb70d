package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shadowknight55/social-dashboard/internal/config"
	"github.com/shadowknight55/social-dashboard/internal/database"
	"github.com/shadowknight55/social-dashboard/internal/models"
	"github.com/shadowknight55/social-dashboard/internal/modules/stats"
	"github.com/shadowknight55/social-dashboard/internal/pkg/logging"
)

// seed pre-populates a year of daily stats so a fresh dashboard has charts
// to draw immediately instead of backfilling on first request.
func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	platformsArg := flag.String("platforms", strings.Join(models.DefaultActiveCharts(), ","), "Comma-separated platforms to seed")
	rangeToken := flag.String("range", stats.Range1Year, "Range to backfill (1day, 7days, 30days, 90days, 1year)")
	refresh := flag.Bool("refresh", false, "Re-synthesize even if records already exist")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := logging.Must("production")
		fallback.Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.Must(cfg.Env)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("index creation failed", zap.Error(err))
	}

	svc := stats.NewService(stats.NewMongoStore(db), stats.NewSynthesizer(), logger)
	for _, platform := range strings.Split(*platformsArg, ",") {
		platform = strings.TrimSpace(platform)
		if platform == "" {
			continue
		}
		records, err := svc.Series(ctx, platform, *rangeToken, *refresh)
		if err != nil {
			logger.Fatal("seed failed", zap.String("platform", platform), zap.Error(err))
		}
		logger.Info("seeded platform",
			zap.String("platform", platform),
			zap.Int("records", len(records)))
	}
}
