package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/richard-senior/oddsboard/internal/logger"
	"github.com/richard-senior/oddsboard/pkg/oddsboard"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	outPath := flag.String("out", "", "override the output feed path")
	dryRun := flag.Bool("dry-run", false, "run the pipeline but don't write the feed")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Configure logging
	logger.SetShowDateTime(true)
	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}

	logger.Info("Starting oddsboard feed generation")

	// Pick up a .env file if one is present
	_ = godotenv.Load()

	cfg, err := oddsboard.LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration:", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}

	// Configuration problems are the only fatal errors: abort before anything
	// is fetched or written
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration:", err)
		os.Exit(1)
	}

	feed, err := oddsboard.Run(cfg)
	if err != nil {
		logger.Error("Feed generation failed:", err)
		os.Exit(1)
	}

	if *dryRun {
		logger.Info("Dry run, not writing feed. Counts:",
			feed.Counts.Morning, feed.Counts.Afternoon, feed.Counts.Evening)
		return
	}

	if err := feed.Write(cfg.OutputPath); err != nil {
		logger.Error("Failed to write feed:", err)
		os.Exit(1)
	}
	logger.Info("Feed written to", cfg.OutputPath, "with", feed.Counts.Total, "fixtures")
}
