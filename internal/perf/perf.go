// Package perf computes summary performance statistics over the daily
// portfolio series.
package perf

import (
	"encoding/json"
	"math"

	"news-event-returns/internal/types"
)

// DefaultAnnualizationDays is the trading-day count used to annualize the
// drift Sharpe ratio.
const DefaultAnnualizationDays = 252

// SeriesStats summarizes one metric × leg series over its non-nil days.
type SeriesStats struct {
	Metric string `json:"metric"` // "initial_reaction" or "drift"
	Leg    string `json:"leg"`    // "long_short", "long_only", "short_only"

	HasData bool    `json:"has_data"`
	Days    int     `json:"days"`
	HitRate float64 `json:"hit_rate"` // fraction of days strictly > 0
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"` // sample std (N-1), 0 when n < 2

	// Sharpe is annualized and only computed for drift series; NaN when
	// the sample deviation is zero.
	Sharpe     float64 `json:"-"`
	Annualized bool    `json:"annualized"`
}

// MarshalJSON emits the Sharpe ratio as null when it is undefined, since
// encoding/json rejects NaN.
func (s SeriesStats) MarshalJSON() ([]byte, error) {
	type alias SeriesStats
	var sharpe *float64
	if !math.IsNaN(s.Sharpe) {
		sharpe = &s.Sharpe
	}
	return json.Marshal(struct {
		alias
		Sharpe *float64 `json:"sharpe"`
	}{alias(s), sharpe})
}

// Summary is the full report across all six series.
type Summary struct {
	FirmDays    int           `json:"firm_days"`
	TradingDays int           `json:"trading_days"`
	Series      []SeriesStats `json:"series"`
}

func sampleStd(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

func summarizeSeries(metric, leg string, vals []float64, annualize bool, annualizationDays float64) SeriesStats {
	s := SeriesStats{Metric: metric, Leg: leg, Sharpe: math.NaN()}
	if len(vals) == 0 {
		return s
	}
	s.HasData = true
	s.Days = len(vals)

	var sum float64
	var hits int
	for _, v := range vals {
		sum += v
		if v > 0 {
			hits++
		}
	}
	s.Mean = sum / float64(len(vals))
	s.HitRate = float64(hits) / float64(len(vals))
	s.StdDev = sampleStd(vals, s.Mean)

	if annualize {
		s.Annualized = true
		if s.StdDev > 0 {
			s.Sharpe = s.Mean / s.StdDev * math.Sqrt(annualizationDays)
		}
	}
	return s
}

func collect(days []types.PortfolioDay, pick func(types.PortfolioDay) *float64) []float64 {
	vals := make([]float64, 0, len(days))
	for _, d := range days {
		if v := pick(d); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

// Summarize computes hit rate, mean return, sample deviation, and (for the
// drift series) the annualized Sharpe ratio for every metric × leg series.
// Empty series report no data and never abort their siblings.
func Summarize(days []types.PortfolioDay, firmDays int, annualizationDays float64) *Summary {
	if annualizationDays <= 0 {
		annualizationDays = DefaultAnnualizationDays
	}

	pick := []struct {
		metric, leg string
		value       func(types.PortfolioDay) *float64
	}{
		{"initial_reaction", "long_short", func(d types.PortfolioDay) *float64 { return d.IRLongShort }},
		{"initial_reaction", "long_only", func(d types.PortfolioDay) *float64 { return d.IRLongOnly }},
		{"initial_reaction", "short_only", func(d types.PortfolioDay) *float64 { return d.IRShortOnly }},
		{"drift", "long_short", func(d types.PortfolioDay) *float64 { return d.DriftLongShort }},
		{"drift", "long_only", func(d types.PortfolioDay) *float64 { return d.DriftLongOnly }},
		{"drift", "short_only", func(d types.PortfolioDay) *float64 { return d.DriftShortOnly }},
	}

	sum := &Summary{FirmDays: firmDays, TradingDays: len(days)}
	for _, p := range pick {
		vals := collect(days, p.value)
		sum.Series = append(sum.Series, summarizeSeries(p.metric, p.leg, vals, p.metric == "drift", annualizationDays))
	}
	return sum
}
