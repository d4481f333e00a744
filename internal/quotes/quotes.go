// Package quotes holds the minute-bucketed mid-price panel used to resolve
// the t+15 quote for intraday stories.
package quotes

import "news-event-returns/internal/types"

// Row is one minute bucket for one ticker. The upstream aggregator has
// already resolved a single mid per minute, so no tie-breaking happens here.
// Minute is minutes since local midnight of Date.
type Row struct {
	Ticker string
	Date   types.Date
	Minute int
	Mid    float64
}

type key struct {
	ticker string
	date   types.Date
	minute int
}

// Panel is an exact-key (ticker, date, minute) lookup, not a nearest-bucket
// search: any tolerance for sub-minute gaps belongs upstream. Read-only
// after Build, safe for concurrent lookups.
type Panel struct {
	mids map[key]float64
}

// Build indexes the minute panel. Duplicate keys keep the first occurrence.
func Build(rows []Row) *Panel {
	p := &Panel{mids: make(map[key]float64, len(rows))}
	for _, r := range rows {
		k := key{r.Ticker, r.Date, r.Minute}
		if _, dup := p.mids[k]; dup {
			continue
		}
		p.mids[k] = r.Mid
	}
	return p
}

// Mid resolves the mid-price at an exact (ticker, date, minute) bucket.
// Absent minutes return false, which callers treat as a left-join miss.
func (p *Panel) Mid(ticker string, date types.Date, minute int) (float64, bool) {
	mid, ok := p.mids[key{ticker, date, minute}]
	return mid, ok
}

// Len reports the number of indexed minute buckets.
func (p *Panel) Len() int { return len(p.mids) }
