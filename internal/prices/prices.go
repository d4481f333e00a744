// Package prices indexes a raw daily price panel into per-(ticker, date)
// records carrying same-day open/close plus positional previous and next
// session closes.
package prices

import (
	"math"
	"sort"

	"news-event-returns/internal/types"
)

// Row is one raw daily price observation. Vendor feeds encode some quote
// flags as negative prices, so signs are not trusted until normalized.
type Row struct {
	Ticker string
	Date   types.Date
	Open   float64
	Close  float64
}

// Day is the indexed record for one (ticker, date). PrevClose and NextClose
// are the neighboring rows within the ticker's date-sorted series, nil at
// the edges. A gap in the series shifts the neighbor silently.
type Day struct {
	Open      float64
	Close     float64
	PrevClose *float64
	NextClose *float64
}

type key struct {
	ticker string
	date   types.Date
}

// Index supports constant-time (ticker, date) lookups. Rebuilt in full on
// every run; read-only afterwards, so safe for concurrent lookups.
type Index struct {
	days map[key]Day
}

// Build de-duplicates and sorts rows by (ticker, date), normalizes price
// signs, and computes the positional shift-by-one closes per ticker. Sign
// normalization happens before the shift so prev/next closes carry the same
// sign convention as the same-day close.
func Build(rows []Row) *Index {
	sorted := make([]Row, 0, len(rows))
	seen := make(map[key]bool, len(rows))
	for _, r := range rows {
		k := key{r.Ticker, r.Date}
		if seen[k] {
			continue
		}
		seen[k] = true
		r.Open = math.Abs(r.Open)
		r.Close = math.Abs(r.Close)
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Ticker != sorted[j].Ticker {
			return sorted[i].Ticker < sorted[j].Ticker
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	idx := &Index{days: make(map[key]Day, len(sorted))}
	for i, r := range sorted {
		day := Day{Open: r.Open, Close: r.Close}
		if i > 0 && sorted[i-1].Ticker == r.Ticker {
			day.PrevClose = types.Float(sorted[i-1].Close)
		}
		if i+1 < len(sorted) && sorted[i+1].Ticker == r.Ticker {
			day.NextClose = types.Float(sorted[i+1].Close)
		}
		idx.days[key{r.Ticker, r.Date}] = day
	}
	return idx
}

// Get returns the indexed record for (ticker, date). A false result is a
// missing-value condition for callers, not an error.
func (idx *Index) Get(ticker string, date types.Date) (Day, bool) {
	d, ok := idx.days[key{ticker, date}]
	return d, ok
}

// Len reports the number of indexed (ticker, date) records.
func (idx *Index) Len() int { return len(idx.days) }
