// Package pipeline orchestrates the batch run: load inputs, derive story
// trading-day attributes, compute event returns, aggregate firm-days, build
// portfolios, and summarize performance. Every stage consumes immutable
// tables and fully replaces its output on each run.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"news-event-returns/internal/calendar"
	"news-event-returns/internal/dataset"
	"news-event-returns/internal/event"
	"news-event-returns/internal/firmday"
	"news-event-returns/internal/logger"
	"news-event-returns/internal/perf"
	"news-event-returns/internal/portfolio"
	"news-event-returns/internal/prices"
	"news-event-returns/internal/quotes"
	"news-event-returns/internal/sink"
	"news-event-returns/internal/store"
	"news-event-returns/internal/types"
)

// Result carries every table produced by one run plus where the file
// outputs were written.
type Result struct {
	RunID         string               `json:"run_id"`
	Events        []types.EventReturn  `json:"-"`
	FirmDays      []types.FirmDay      `json:"-"`
	PortfolioDays []types.PortfolioDay `json:"-"`
	Summary       *perf.Summary        `json:"summary"`
	EventPath     string               `json:"event_path"`
	PortfolioPath string               `json:"portfolio_path"`
}

// Run executes the full pipeline under cfg. Inputs with schema violations
// abort before any computation; missing join keys and empty partitions
// degrade to nulls and are surfaced through diagnostics only.
func Run(ctx context.Context, cfg *store.Config) (*Result, error) {
	runID := uuid.NewString()
	logger.Info(ctx, "Pipeline run starting", "run_id", runID)

	normalizer, err := calendar.New(cfg.Calendar.OriginTZ, cfg.Calendar.LocalTZ)
	if err != nil {
		return nil, err
	}

	stories, priceIndex, quotePanel, err := loadInputs(ctx, cfg, normalizer)
	if err != nil {
		return nil, err
	}

	timer := logger.StartOperation(ctx, "pipeline.compute_event_returns", "stories", len(stories))
	calc := event.NewCalculator(priceIndex, quotePanel)
	events := calc.ComputeAll(timer.GetContext(), stories, cfg.Pipeline.Workers)
	calc.Diag().Log(timer.GetContext())
	timer.End("events", len(events))

	timer = logger.StartOperation(ctx, "pipeline.aggregate_firm_days")
	firmDays := firmday.Aggregate(events)
	timer.End("firm_days", len(firmDays))

	timer = logger.StartOperation(ctx, "pipeline.build_portfolios", "min_leg_size", cfg.Portfolio.MinLegSize)
	portfolioDays := portfolio.Build(firmDays, cfg.Portfolio.MinLegSize)
	timer.End("trading_days", len(portfolioDays))

	summary := perf.Summarize(portfolioDays, len(firmDays), cfg.Performance.AnnualizationDays)

	res := &Result{
		RunID:         runID,
		Events:        events,
		FirmDays:      firmDays,
		PortfolioDays: portfolioDays,
		Summary:       summary,
	}
	if err := writeOutputs(ctx, cfg, res); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Pipeline run finished",
		"run_id", runID,
		"stories", len(stories),
		"firm_days", len(firmDays),
		"trading_days", len(portfolioDays),
	)
	return res, nil
}

// loadInputs reads the story table and builds the two market-data lookups.
// The price index and quote panel have no dependency on each other, so they
// load and build concurrently.
func loadInputs(ctx context.Context, cfg *store.Config, n *calendar.Normalizer) ([]types.Story, *prices.Index, *quotes.Panel, error) {
	timer := logger.StartOperation(ctx, "pipeline.load_inputs")

	var (
		wg         sync.WaitGroup
		priceIndex *prices.Index
		quotePanel *quotes.Panel
		priceErr   error
		quoteErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, err := dataset.ReadDailyPrices(cfg.Data.DailyPrices)
		if err != nil {
			priceErr = err
			return
		}
		priceIndex = prices.Build(rows)
	}()
	go func() {
		defer wg.Done()
		rows, err := dataset.ReadMinuteQuotes(cfg.Data.MinuteQuotes)
		if err != nil {
			quoteErr = err
			return
		}
		quotePanel = quotes.Build(rows)
	}()

	stories, err := dataset.ReadStories(cfg.Data.Stories, n.Origin())
	if err != nil {
		wg.Wait()
		timer.EndWithError(err)
		return nil, nil, nil, err
	}

	stories, err = deriveStoryAttributes(ctx, cfg, n, stories)
	if err != nil {
		wg.Wait()
		timer.EndWithError(err)
		return nil, nil, nil, err
	}

	wg.Wait()
	if priceErr != nil {
		timer.EndWithError(priceErr)
		return nil, nil, nil, priceErr
	}
	if quoteErr != nil {
		timer.EndWithError(quoteErr)
		return nil, nil, nil, quoteErr
	}

	timer.End(
		"stories", len(stories),
		"price_days", priceIndex.Len(),
		"quote_minutes", quotePanel.Len(),
	)
	return stories, priceIndex, quotePanel, nil
}

// deriveStoryAttributes fills TradingDate, IsIntraday, and TargetMinute,
// either from a prebuilt story index (stories absent from the index are
// dropped, matching the upstream inner join) or from the calendar
// normalizer applied to each story's timestamp.
func deriveStoryAttributes(ctx context.Context, cfg *store.Config, n *calendar.Normalizer, stories []types.Story) ([]types.Story, error) {
	if cfg.Data.StoryIndex == "" {
		for i := range stories {
			stories[i].TradingDate, stories[i].IsIntraday, stories[i].TargetMinute = n.Normalize(stories[i].Timestamp)
		}
		return stories, nil
	}

	index, err := dataset.ReadStoryIndex(cfg.Data.StoryIndex)
	if err != nil {
		return nil, err
	}
	matched := make([]types.Story, 0, len(stories))
	for _, s := range stories {
		entry, ok := index[[2]string{s.ID, s.Ticker}]
		if !ok {
			continue
		}
		s.TradingDate = entry.Date
		s.IsIntraday = entry.IsIntraday
		s.TargetMinute = entry.TargetMinute
		matched = append(matched, s)
	}
	logger.Info(ctx, "Joined stories against prebuilt index",
		"stories", len(stories), "matched", len(matched))
	return matched, nil
}

func writeOutputs(ctx context.Context, cfg *store.Config, res *Result) error {
	timer := logger.StartOperation(ctx, "pipeline.write_outputs", "out_dir", cfg.Data.OutDir)

	path, err := dataset.WriteEventReturns(cfg.Data.OutDir, cfg.Data.OutFormat, res.Events)
	if err != nil {
		timer.EndWithError(err)
		return fmt.Errorf("writing event returns: %w", err)
	}
	res.EventPath = path

	path, err = dataset.WritePortfolioDays(cfg.Data.OutDir, cfg.Data.OutFormat, res.PortfolioDays)
	if err != nil {
		timer.EndWithError(err)
		return fmt.Errorf("writing portfolio days: %w", err)
	}
	res.PortfolioPath = path

	if cfg.Sink.PostgresDSN != "" {
		if err := storeToSink(ctx, cfg.Sink.PostgresDSN, res); err != nil {
			timer.EndWithError(err)
			return err
		}
	}

	timer.End("event_path", res.EventPath, "portfolio_path", res.PortfolioPath)
	return nil
}

func storeToSink(ctx context.Context, dsn string, res *Result) error {
	pg, err := sink.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.StoreEventReturns(ctx, res.RunID, res.Events); err != nil {
		return fmt.Errorf("storing event returns: %w", err)
	}
	if err := pg.StorePortfolioDays(ctx, res.RunID, res.PortfolioDays); err != nil {
		return fmt.Errorf("storing portfolio days: %w", err)
	}
	return nil
}
