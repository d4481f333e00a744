package types

import (
	"fmt"
	"time"
)

// Sentiment classes assigned at the firm-day level.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Date is a calendar date without a time component. It is comparable and
// usable as a map key, unlike time.Time with attached locations.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in 2006-01-02 form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Float returns a pointer to v. Used for nullable metric fields.
func Float(v float64) *float64 { return &v }

// Story is one labeled news item about one instrument, immutable once
// ingested. TradingDate, IsIntraday, and TargetMinute are derived from
// Timestamp by the calendar normalizer (or supplied by a prebuilt index).
type Story struct {
	ID        string    `json:"story_id"`
	Ticker    string    `json:"ticker"`
	Headline  string    `json:"headline"`
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp_utc"`

	TradingDate Date `json:"trading_date"`
	IsIntraday  bool `json:"is_intraday"`
	// TargetMinute is the t+15 quote-join key as minutes since local
	// midnight, or -1 for overnight stories.
	TargetMinute int `json:"target_minute"`
}

// EventReturn is one story joined with its daily prices and, for intraday
// stories, the minute quote at t+15. Nil metric fields mean the value could
// not be computed (missing join or zero denominator), never zero.
type EventReturn struct {
	StoryID    string  `json:"story_id"`
	Ticker     string  `json:"ticker"`
	Date       Date    `json:"date"`
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	IsIntraday bool    `json:"is_intraday"`

	MidT15    *float64 `json:"mid_t15"`
	Open      *float64 `json:"open"`
	Close     *float64 `json:"close"`
	PrevClose *float64 `json:"prev_close"`
	NextClose *float64 `json:"next_close"`

	InitialReaction *float64 `json:"initial_reaction"`
	Drift           *float64 `json:"drift"`
}

// FirmDay collapses all stories for one (ticker, date) into a single
// sentiment observation with averaged returns.
type FirmDay struct {
	Ticker          string   `json:"ticker"`
	Date            Date     `json:"date"`
	AvgScore        float64  `json:"avg_score"`
	NStories        int      `json:"n_stories"`
	InitialReaction *float64 `json:"initial_reaction"`
	Drift           *float64 `json:"drift"`
	Sentiment       string   `json:"sentiment"`
}

// PortfolioDay is one daily rebalance: leg counts plus equal-weighted mean
// returns per leg. Short-only values are sign-flipped so a positive number
// means the short book gained. Long-short values are nil unless both legs
// met the eligibility threshold that date.
type PortfolioDay struct {
	Date      Date `json:"date"`
	NPositive int  `json:"n_positive"`
	NNegative int  `json:"n_negative"`
	NNeutral  int  `json:"n_neutral"`

	IRLongOnly     *float64 `json:"ir_long_only"`
	IRShortOnly    *float64 `json:"ir_short_only"`
	IRLongShort    *float64 `json:"ir_long_short"`
	DriftLongOnly  *float64 `json:"drift_long_only"`
	DriftShortOnly *float64 `json:"drift_short_only"`
	DriftLongShort *float64 `json:"drift_long_short"`
}
