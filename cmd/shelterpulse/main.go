package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/shelterpulse/shelterpulse/internal/config"
	"github.com/shelterpulse/shelterpulse/internal/logger"
	"github.com/shelterpulse/shelterpulse/internal/outcomes"
	"github.com/shelterpulse/shelterpulse/internal/report"
	"github.com/shelterpulse/shelterpulse/internal/socrata"
	"github.com/shelterpulse/shelterpulse/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration (defaults apply when the file is absent)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	runID := uuid.New().String()
	logger.Info("Starting outcome report run %s", runID)

	// Cancel the fetch on SIGINT/SIGTERM; a partial dataset is never written.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, aborting run")
		cancel()
	}()

	client := socrata.NewClient(cfg.Socrata.BaseURL, cfg.Socrata.UserAgent, cfg.Socrata.Timeout)

	logger.Debug("Fetching records from %s (page size %d)", cfg.Socrata.BaseURL, cfg.Socrata.PageSize)
	records, err := client.FetchAll(ctx, cfg.Socrata.PageSize)
	if err != nil {
		logger.Fatal("Failed to fetch outcome records: %v", err)
	}
	logger.Info("Fetched %d outcome records", len(records))

	filtered := outcomes.Normalize(records, cfg.Report.AnimalType)
	logger.Info("Kept %d %s records with parseable timestamps (dropped %d)",
		len(filtered), cfg.Report.AnimalType, len(records)-len(filtered))

	buckets := outcomes.Aggregate(filtered)
	logger.Info("Aggregated %d monthly buckets", len(buckets))

	cutoff := cfg.BaselineCutoff()
	baseline, ok := outcomes.Baseline(buckets, cutoff)
	if ok {
		logger.Info("Baseline monthly intake before %s: %.1f", cfg.Report.BaselineCutoff, baseline)
	} else {
		logger.Warn("No months before baseline cutoff %s; adjusted rates will be empty", cfg.Report.BaselineCutoff)
	}
	buckets = outcomes.ApplyAdjustedRate(buckets, baseline, ok)

	writer := &report.Writer{RunID: runID}
	if err := writer.Write(buckets, cfg.Report.OutputFile); err != nil {
		logger.Fatal("Failed to write report: %v", err)
	}
	logger.Info("Wrote %d monthly rows to %s", len(buckets), cfg.Report.OutputFile)

	if cfg.Telegram.Enabled {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 0, 0)
		if err != nil {
			logger.Warn("Failed to initialize Telegram client: %v", err)
			return
		}
		summary := telegram.RunSummary{
			RunID:      runID,
			Records:    len(filtered),
			Months:     len(buckets),
			OutputFile: cfg.Report.OutputFile,
			FinishedAt: time.Now(),
		}
		if len(buckets) > 0 {
			summary.Latest = &buckets[len(buckets)-1]
		}
		if err := notifier.SendSummary(summary); err != nil {
			logger.Warn("Failed to send run summary: %v", err)
		} else {
			logger.Info("Sent run summary to Telegram")
		}
	}
}
