package event

import (
	"context"
	"sync/atomic"

	"news-event-returns/internal/logger"
)

// Diagnostics counts join and arithmetic outcomes across a batch. Missing
// joins and zero denominators both resolve to nil outputs but are tracked as
// distinct conditions.
type Diagnostics struct {
	Stories         atomic.Int64
	PriceMatched    atomic.Int64
	MissingPrice    atomic.Int64
	QuoteMatched    atomic.Int64
	MissingQuote    atomic.Int64
	ZeroDenominator atomic.Int64
}

// Log emits the matched-vs-total counters.
func (d *Diagnostics) Log(ctx context.Context) {
	logger.Info(ctx, "Event return diagnostics",
		"stories", d.Stories.Load(),
		"price_matched", d.PriceMatched.Load(),
		"price_missing", d.MissingPrice.Load(),
		"quote_matched", d.QuoteMatched.Load(),
		"quote_missing", d.MissingQuote.Load(),
		"zero_denominator", d.ZeroDenominator.Load(),
	)
}
