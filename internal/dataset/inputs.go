package dataset

import (
	"fmt"
	"time"

	"news-event-returns/internal/prices"
	"news-event-returns/internal/quotes"
	"news-event-returns/internal/types"
)

// StoryRow is one labeled headline as produced by the labeling collaborator.
type StoryRow struct {
	StoryID      string  `csv:"story_id" parquet:"story_id"`
	Ticker       string  `csv:"ticker" parquet:"ticker"`
	Headline     string  `csv:"headline" parquet:"headline"`
	Label        string  `csv:"label" parquet:"label"`
	Score        float64 `csv:"score" parquet:"score"`
	TimestampUTC string  `csv:"timestamp_utc" parquet:"timestamp_utc"`
}

var storyColumns = []string{"story_id", "ticker", "headline", "label", "score", "timestamp_utc"}

// ReadStories loads the labeled-story table. Naive timestamps are parsed in
// originTZ. Stories with an empty ticker are dropped before any join.
func ReadStories(path string, originTZ *time.Location) ([]types.Story, error) {
	rows, err := readRows[StoryRow](path, "stories", storyColumns)
	if err != nil {
		return nil, err
	}

	out := make([]types.Story, 0, len(rows))
	for _, r := range rows {
		if r.Ticker == "" {
			continue
		}
		ts, err := ParseTimestamp(r.TimestampUTC, originTZ)
		if err != nil {
			return nil, fmt.Errorf("story %s: %w", r.StoryID, err)
		}
		out = append(out, types.Story{
			ID:           r.StoryID,
			Ticker:       r.Ticker,
			Headline:     r.Headline,
			Label:        r.Label,
			Score:        r.Score,
			Timestamp:    ts,
			TargetMinute: -1,
		})
	}
	return out, nil
}

// StoryIndexRow is one row of the prebuilt intraday story index.
type StoryIndexRow struct {
	StoryID      string `csv:"story_id" parquet:"story_id"`
	Ticker       string `csv:"ticker" parquet:"ticker"`
	Date         string `csv:"date" parquet:"date"`
	IsIntraday   bool   `csv:"is_intraday" parquet:"is_intraday"`
	TargetMinute string `csv:"target_minute" parquet:"target_minute,optional"`
}

var storyIndexColumns = []string{"story_id", "ticker", "date", "is_intraday", "target_minute"}

// IndexEntry is the derived trading-day attributes for one story.
type IndexEntry struct {
	Date         types.Date
	IsIntraday   bool
	TargetMinute int
}

// ReadStoryIndex loads a prebuilt index keyed by (story_id, ticker),
// matching the upstream join key.
func ReadStoryIndex(path string) (map[[2]string]IndexEntry, error) {
	rows, err := readRows[StoryIndexRow](path, "story_index", storyIndexColumns)
	if err != nil {
		return nil, err
	}

	out := make(map[[2]string]IndexEntry, len(rows))
	for _, r := range rows {
		date, err := types.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("story_index %s: %w", r.StoryID, err)
		}
		entry := IndexEntry{Date: date, IsIntraday: r.IsIntraday, TargetMinute: -1}
		if r.IsIntraday {
			minute, err := minuteOfClock(r.TargetMinute)
			if err != nil {
				return nil, fmt.Errorf("story_index %s: %w", r.StoryID, err)
			}
			entry.TargetMinute = minute
		}
		out[[2]string{r.StoryID, r.Ticker}] = entry
	}
	return out, nil
}

// PriceRow is one daily price observation. Plain open/close column names
// are the default; the CRSP vendor form (openprc/closeprc) is accepted too.
type PriceRow struct {
	Date   string  `csv:"date" parquet:"date"`
	Ticker string  `csv:"ticker" parquet:"ticker"`
	Open   float64 `csv:"open" parquet:"open"`
	Close  float64 `csv:"close" parquet:"close"`
}

type crspPriceRow struct {
	Date   string  `csv:"date" parquet:"date"`
	Ticker string  `csv:"ticker" parquet:"ticker"`
	Open   float64 `csv:"openprc" parquet:"openprc"`
	Close  float64 `csv:"closeprc" parquet:"closeprc"`
}

// ReadDailyPrices loads the raw daily price panel. Sign normalization is
// left to the price indexer.
func ReadDailyPrices(path string) ([]prices.Row, error) {
	cols, err := Columns(path)
	if err != nil {
		return nil, fmt.Errorf("table daily_prices: %w", err)
	}

	var raw []PriceRow
	if cols["openprc"] || cols["closeprc"] {
		crsp, err := readRows[crspPriceRow](path, "daily_prices", []string{"date", "ticker", "openprc", "closeprc"})
		if err != nil {
			return nil, err
		}
		for _, r := range crsp {
			raw = append(raw, PriceRow(r))
		}
	} else {
		raw, err = readRows[PriceRow](path, "daily_prices", []string{"date", "ticker", "open", "close"})
		if err != nil {
			return nil, err
		}
	}

	out := make([]prices.Row, 0, len(raw))
	for _, r := range raw {
		date, err := types.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("daily_prices %s: %w", r.Ticker, err)
		}
		out = append(out, prices.Row{Ticker: r.Ticker, Date: date, Open: r.Open, Close: r.Close})
	}
	return out, nil
}

// QuoteRow is one minute bucket of the NBBO mid panel. The ticker may come
// pre-built, or as sym_root plus optional sym_suffix which are concatenated
// so the quote ticker space matches the price ticker space.
type QuoteRow struct {
	Date      string  `csv:"date" parquet:"date"`
	Ticker    string  `csv:"ticker" parquet:"ticker,optional"`
	SymRoot   string  `csv:"sym_root" parquet:"sym_root,optional"`
	SymSuffix string  `csv:"sym_suffix" parquet:"sym_suffix,optional"`
	MinuteTS  string  `csv:"minute_ts" parquet:"minute_ts"`
	Mid       float64 `csv:"mid" parquet:"mid"`
}

// ReadMinuteQuotes loads the minute-quote panel.
func ReadMinuteQuotes(path string) ([]quotes.Row, error) {
	cols, err := Columns(path)
	if err != nil {
		return nil, fmt.Errorf("table minute_quotes: %w", err)
	}
	required := []string{"date", "minute_ts", "mid"}
	if cols["ticker"] {
		required = append(required, "ticker")
	} else {
		required = append(required, "sym_root")
	}

	rows, err := readRows[QuoteRow](path, "minute_quotes", required)
	if err != nil {
		return nil, err
	}

	out := make([]quotes.Row, 0, len(rows))
	for _, r := range rows {
		ticker := r.Ticker
		if ticker == "" {
			ticker = r.SymRoot + r.SymSuffix
		}
		date, err := types.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("minute_quotes %s: %w", ticker, err)
		}
		minute, err := minuteOfClock(r.MinuteTS)
		if err != nil {
			return nil, fmt.Errorf("minute_quotes %s %s: %w", ticker, r.Date, err)
		}
		out = append(out, quotes.Row{Ticker: ticker, Date: date, Minute: minute, Mid: r.Mid})
	}
	return out, nil
}
