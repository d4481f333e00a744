// Package event joins labeled stories against the price index and the
// minute-quote panel and computes the initial-reaction and drift returns.
package event

import (
	"context"
	"sync"

	"news-event-returns/internal/logger"
	"news-event-returns/internal/prices"
	"news-event-returns/internal/types"
)

// PriceLookup resolves the indexed daily prices for a (ticker, date).
type PriceLookup interface {
	Get(ticker string, date types.Date) (prices.Day, bool)
}

// QuoteLookup resolves the minute mid-price at an exact bucket.
type QuoteLookup interface {
	Mid(ticker string, date types.Date, minute int) (float64, bool)
}

// Calculator computes per-story event returns. Compute is pure with respect
// to the calculator's inputs; the only shared state is the diagnostics
// counter set, which is updated atomically so stories may be processed in
// parallel.
type Calculator struct {
	prices PriceLookup
	quotes QuoteLookup
	diag   *Diagnostics
}

// NewCalculator builds a Calculator over the given lookups.
func NewCalculator(p PriceLookup, q QuoteLookup) *Calculator {
	return &Calculator{prices: p, quotes: q, diag: &Diagnostics{}}
}

// Diag returns the counters accumulated so far.
func (c *Calculator) Diag() *Diagnostics { return c.diag }

// ratio computes (num-base)/base, or nil when either operand is missing or
// the denominator is zero. Zero denominators are counted separately from
// missing joins.
func (c *Calculator) ratio(num, base *float64) *float64 {
	if num == nil || base == nil {
		return nil
	}
	if *base == 0 {
		c.diag.ZeroDenominator.Add(1)
		return nil
	}
	return types.Float((*num - *base) / *base)
}

// Compute joins one story against prices and quotes and evaluates the two
// return regimes:
//
//	intraday:  initial_reaction = (mid_t15 - prev_close) / prev_close
//	           drift            = (next_close - close) / close
//	overnight: initial_reaction = (open - prev_close) / prev_close
//	           drift            = (close - open) / open
//
// Missing operands propagate as nil fields, never as zeros or errors.
func (c *Calculator) Compute(story types.Story) types.EventReturn {
	ev := types.EventReturn{
		StoryID:    story.ID,
		Ticker:     story.Ticker,
		Date:       story.TradingDate,
		Label:      story.Label,
		Score:      story.Score,
		IsIntraday: story.IsIntraday,
	}

	if day, ok := c.prices.Get(story.Ticker, story.TradingDate); ok {
		c.diag.PriceMatched.Add(1)
		ev.Open = types.Float(day.Open)
		ev.Close = types.Float(day.Close)
		ev.PrevClose = day.PrevClose
		ev.NextClose = day.NextClose
	} else {
		c.diag.MissingPrice.Add(1)
	}

	if story.IsIntraday {
		if mid, ok := c.quotes.Mid(story.Ticker, story.TradingDate, story.TargetMinute); ok {
			c.diag.QuoteMatched.Add(1)
			ev.MidT15 = types.Float(mid)
		} else {
			c.diag.MissingQuote.Add(1)
		}
		ev.InitialReaction = c.ratio(ev.MidT15, ev.PrevClose)
		ev.Drift = c.ratio(ev.NextClose, ev.Close)
	} else {
		ev.InitialReaction = c.ratio(ev.Open, ev.PrevClose)
		ev.Drift = c.ratio(ev.Close, ev.Open)
	}

	return ev
}

// ComputeAll evaluates every story across a bounded worker pool and returns
// the results in input order. Stories share no in-flight state, so sharding
// needs no coordination beyond the final collection.
func (c *Calculator) ComputeAll(ctx context.Context, stories []types.Story, workers int) []types.EventReturn {
	if workers < 1 {
		workers = 1
	}
	c.diag.Stories.Add(int64(len(stories)))

	out := make([]types.EventReturn, len(stories))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = c.Compute(stories[i])
			}
		}()
	}

	for i := range stories {
		select {
		case <-ctx.Done():
			logger.Warn(ctx, "Event return computation cancelled", "completed", i, "total", len(stories))
			close(jobs)
			wg.Wait()
			return out[:i]
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}
