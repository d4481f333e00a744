package perf

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"news-event-returns/internal/types"
)

func d(day int) types.Date {
	return types.Date{Year: 2024, Month: time.June, Day: day}
}

func findSeries(t *testing.T, s *Summary, metric, leg string) SeriesStats {
	t.Helper()
	for _, st := range s.Series {
		if st.Metric == metric && st.Leg == leg {
			return st
		}
	}
	t.Fatalf("series %s/%s not found", metric, leg)
	return SeriesStats{}
}

func TestSummarizeDropsNullDays(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), DriftLongShort: types.Float(0.01)},
		{Date: d(4)}, // null day for long-short
		{Date: d(5), DriftLongShort: types.Float(-0.01)},
	}
	s := Summarize(days, 10, 252)

	ls := findSeries(t, s, "drift", "long_short")
	if ls.Days != 2 {
		t.Errorf("days = %d, want 2 (null day dropped)", ls.Days)
	}
	if ls.HitRate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", ls.HitRate)
	}
	if ls.Mean != 0 {
		t.Errorf("mean = %v, want 0", ls.Mean)
	}
}

func TestHitRateIsStrict(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), IRLongOnly: types.Float(0.0)},
		{Date: d(4), IRLongOnly: types.Float(0.02)},
	}
	s := Summarize(days, 2, 252)

	lo := findSeries(t, s, "initial_reaction", "long_only")
	// A flat day is not a hit.
	if lo.HitRate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", lo.HitRate)
	}
}

func TestSharpeOnlyForDrift(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), IRLongOnly: types.Float(0.01), DriftLongOnly: types.Float(0.01)},
		{Date: d(4), IRLongOnly: types.Float(0.03), DriftLongOnly: types.Float(0.03)},
	}
	s := Summarize(days, 2, 252)

	ir := findSeries(t, s, "initial_reaction", "long_only")
	if ir.Annualized {
		t.Error("initial reaction series should not carry a Sharpe")
	}

	dr := findSeries(t, s, "drift", "long_only")
	if !dr.Annualized {
		t.Fatal("drift series should be annualized")
	}
	// mean 0.02, sample std sqrt(2*0.0001) ≈ 0.014142
	wantStd := math.Sqrt(0.0002)
	if math.Abs(dr.StdDev-wantStd) > 1e-12 {
		t.Errorf("std = %v, want %v", dr.StdDev, wantStd)
	}
	want := 0.02 / wantStd * math.Sqrt(252)
	if math.Abs(dr.Sharpe-want) > 1e-9 {
		t.Errorf("sharpe = %v, want %v", dr.Sharpe, want)
	}
}

func TestSharpeIsNaNOnZeroDispersion(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), DriftLongOnly: types.Float(0.01)},
		{Date: d(4), DriftLongOnly: types.Float(0.01)},
	}
	s := Summarize(days, 2, 252)

	dr := findSeries(t, s, "drift", "long_only")
	if dr.StdDev != 0 {
		t.Fatalf("std = %v, want 0", dr.StdDev)
	}
	if !math.IsNaN(dr.Sharpe) {
		t.Errorf("sharpe = %v, want NaN", dr.Sharpe)
	}
}

func TestSingleObservationHasZeroStd(t *testing.T) {
	days := []types.PortfolioDay{{Date: d(3), DriftLongOnly: types.Float(0.01)}}
	dr := findSeries(t, Summarize(days, 1, 252), "drift", "long_only")
	if dr.StdDev != 0 {
		t.Errorf("std = %v, want 0 for n < 2", dr.StdDev)
	}
	if !math.IsNaN(dr.Sharpe) {
		t.Errorf("sharpe = %v, want NaN", dr.Sharpe)
	}
}

func TestEmptySeriesReportsNoData(t *testing.T) {
	// No day has a long-short value; its series reports no data while the
	// sibling series still summarize.
	days := []types.PortfolioDay{
		{Date: d(3), IRLongOnly: types.Float(0.01)},
	}
	s := Summarize(days, 1, 252)

	ls := findSeries(t, s, "initial_reaction", "long_short")
	if ls.HasData {
		t.Error("empty series should report no data")
	}
	lo := findSeries(t, s, "initial_reaction", "long_only")
	if !lo.HasData {
		t.Error("sibling series should still summarize")
	}
}

func TestReportRendersNoDataAndNaN(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), DriftLongOnly: types.Float(0.01)},
		{Date: d(4), DriftLongOnly: types.Float(0.01)},
	}
	s := Summarize(days, 2, 252)

	var sb strings.Builder
	s.WriteReport(&sb)
	out := sb.String()

	if !strings.Contains(out, "Initial Reaction | Long-Short: no data") {
		t.Errorf("report missing no-data line:\n%s", out)
	}
	if !strings.Contains(out, "NaN") {
		t.Errorf("report should surface the undefined Sharpe:\n%s", out)
	}
}

func TestSummaryJSONHandlesNaNSharpe(t *testing.T) {
	days := []types.PortfolioDay{
		{Date: d(3), DriftLongOnly: types.Float(0.01)},
		{Date: d(4), DriftLongOnly: types.Float(0.01)},
	}
	s := Summarize(days, 2, 252)

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"sharpe":null`) {
		t.Errorf("NaN sharpe should marshal as null:\n%s", b)
	}
}
