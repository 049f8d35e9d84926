package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"realtor-scraper/scraper/realtor"
	"realtor-scraper/services"
	"realtor-scraper/storage"
	"realtor-scraper/utils"
	"syscall"
	"time"
)

func main() {
	cfg := config.DefaultConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.Error("An error occurred: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	utils.Info("Scraper starting | min_sqft=%d all_pages=%t tab_delay=%v settle=%v",
		cfg.MinSquareFeet, cfg.ScrapeAllPages, cfg.InterTabDelay, cfg.SettleDelay)

	session, err := realtor.Attach(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	extractor := realtor.NewDocumentExtractor(cfg.Locators, cfg.SiteOrigin)
	outcome, err := realtor.NewScraper(cfg, session, extractor).Run(ctx)
	if err != nil {
		return err
	}

	path, err := storage.NewCSVWriter(cfg.OutputDir, cfg.OutputBase).Write(outcome.Listings)
	if err != nil {
		return fmt.Errorf("failed to save CSV: %w", err)
	}

	if cfg.Postgres.Enabled {
		archive(ctx, cfg.Postgres, outcome.Listings)
	}

	printSummary(outcome, path)
	services.PrintReport(os.Stdout, services.GenerateReport(outcome.Listings))
	services.PrintShortlist(os.Stdout, services.FilterListings(outcome.Listings, cfg.Shortlist))
	return nil
}

// archive copies the run into PostgreSQL. The CSV is already on disk, so
// failures here are reported and otherwise ignored.
func archive(ctx context.Context, cfg config.Postgres, listings []models.Listing) {
	pgWriter, err := storage.NewPostgresWriter(ctx, cfg)
	if err != nil {
		utils.Warn("Skipping PostgreSQL archive: %v", err)
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.EnsureSchema(ctx); err != nil {
		utils.Warn("Skipping PostgreSQL archive: %v", err)
		return
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	if err := pgWriter.WriteBatch(ctx, runID, listings); err != nil {
		utils.Warn("Failed to archive listings to PostgreSQL: %v", err)
		return
	}
	utils.Success("Archived %d listings to PostgreSQL (run %s)", len(listings), runID)
}

func printSummary(outcome *realtor.Outcome, path string) {
	failed := 0
	for _, r := range outcome.Results {
		if r.Failed() {
			failed++
		}
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║                SCRAPE COMPLETE               ║")
	fmt.Println("╠══════════════════════════════════════════════╣")
	fmt.Printf("║  Pages scraped  : %-26d║\n", len(outcome.Results)-failed)
	fmt.Printf("║  Pages failed   : %-26d║\n", failed)
	fmt.Printf("║  Listings saved : %-26d║\n", len(outcome.Listings))
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Printf("Output: %s\n", path)
	fmt.Println()
}
