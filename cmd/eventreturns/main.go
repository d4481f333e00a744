// Command eventreturns runs the news event-return and portfolio pipeline:
// labeled stories are joined against daily prices and minute quotes,
// aggregated to firm-day sentiment, and rolled into daily long/short
// portfolios with summary statistics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"news-event-returns/internal/logger"
	"news-event-returns/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to pipeline config")
	jsonOut := flag.String("json", "", "optional path for a JSON dump of the summary")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer shutdown(ctx)

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Pipeline run failed", err)
		fmt.Fprintf(os.Stderr, "Pipeline run failed: %v\n", err)
		os.Exit(1)
	}

	res.Summary.WriteReport(os.Stdout)
	fmt.Printf("\nEvent returns:   %s\n", res.EventPath)
	fmt.Printf("Portfolio daily: %s\n", res.PortfolioPath)

	if *jsonOut != "" {
		if err := saveSummaryJSON(res, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write JSON summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Summary JSON:    %s\n", *jsonOut)
	}
}

func saveSummaryJSON(res *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
