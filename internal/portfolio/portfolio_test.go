package portfolio

import (
	"testing"
	"time"

	"news-event-returns/internal/types"
)

func d(day int) types.Date {
	return types.Date{Year: 2024, Month: time.June, Day: day}
}

func fd(ticker string, date types.Date, sentiment string, ir, drift *float64) types.FirmDay {
	return types.FirmDay{Ticker: ticker, Date: date, Sentiment: sentiment, InitialReaction: ir, Drift: drift, NStories: 1}
}

func TestLongShortRequiresTwoFirmsPerLeg(t *testing.T) {
	// Three positive firm-days but only one negative: long-short is null,
	// long-only still reports.
	days := Build([]types.FirmDay{
		fd("A", d(3), types.SentimentPositive, types.Float(0.01), nil),
		fd("B", d(3), types.SentimentPositive, types.Float(0.02), nil),
		fd("C", d(3), types.SentimentPositive, types.Float(0.03), nil),
		fd("D", d(3), types.SentimentNegative, types.Float(-0.05), nil),
	}, 2)

	if len(days) != 1 {
		t.Fatalf("got %d portfolio days, want 1", len(days))
	}
	pd := days[0]
	if pd.NPositive != 3 || pd.NNegative != 1 {
		t.Fatalf("counts = %d/%d, want 3/1", pd.NPositive, pd.NNegative)
	}
	if pd.IRLongShort != nil {
		t.Errorf("ir_long_short = %v, want nil below eligibility", *pd.IRLongShort)
	}
	if pd.IRLongOnly == nil || *pd.IRLongOnly != 0.02 {
		t.Errorf("ir_long_only = %v, want 0.02", pd.IRLongOnly)
	}
	// Short-only reports (sign-flipped) even when ineligible for long-short.
	if pd.IRShortOnly == nil || *pd.IRShortOnly != 0.05 {
		t.Errorf("ir_short_only = %v, want 0.05", pd.IRShortOnly)
	}
}

func TestLongShortComputedWhenBothLegsEligible(t *testing.T) {
	// Two positives averaging drift 0.01, two negatives averaging -0.03.
	days := Build([]types.FirmDay{
		fd("A", d(3), types.SentimentPositive, nil, types.Float(0.00)),
		fd("B", d(3), types.SentimentPositive, nil, types.Float(0.02)),
		fd("C", d(3), types.SentimentNegative, nil, types.Float(-0.02)),
		fd("D", d(3), types.SentimentNegative, nil, types.Float(-0.04)),
		fd("E", d(3), types.SentimentNeutral, nil, types.Float(0.10)),
	}, 2)

	pd := days[0]
	if pd.NNeutral != 1 {
		t.Errorf("n_neutral = %d, want 1", pd.NNeutral)
	}
	// long-short = 0.01 - (-0.03), from the un-negated short mean.
	if pd.DriftLongShort == nil || *pd.DriftLongShort != 0.04 {
		t.Errorf("drift_long_short = %v, want 0.04", pd.DriftLongShort)
	}
	// short-only is sign-flipped: the short book gained 0.03.
	if pd.DriftShortOnly == nil || *pd.DriftShortOnly != 0.03 {
		t.Errorf("drift_short_only = %v, want 0.03", pd.DriftShortOnly)
	}
}

func TestEmptyLegStaysNilNeverZero(t *testing.T) {
	days := Build([]types.FirmDay{
		fd("A", d(3), types.SentimentPositive, types.Float(0.01), nil),
		fd("B", d(3), types.SentimentPositive, types.Float(0.03), nil),
	}, 2)

	pd := days[0]
	if pd.IRShortOnly != nil {
		t.Errorf("ir_short_only = %v, want nil for empty leg", *pd.IRShortOnly)
	}
	if pd.IRLongShort != nil {
		t.Errorf("ir_long_short = %v, want nil (empty leg must not become 0)", *pd.IRLongShort)
	}
}

func TestEligibleLegsWithNilMetricsStayNil(t *testing.T) {
	// Both legs have two members, but every negative drift is nil: the
	// long-short difference has a missing operand and must stay nil.
	days := Build([]types.FirmDay{
		fd("A", d(3), types.SentimentPositive, nil, types.Float(0.01)),
		fd("B", d(3), types.SentimentPositive, nil, types.Float(0.01)),
		fd("C", d(3), types.SentimentNegative, nil, nil),
		fd("D", d(3), types.SentimentNegative, nil, nil),
	}, 2)

	if days[0].DriftLongShort != nil {
		t.Errorf("drift_long_short = %v, want nil when the short mean is absent", *days[0].DriftLongShort)
	}
}

func TestDatesProcessedIndependently(t *testing.T) {
	days := Build([]types.FirmDay{
		fd("A", d(3), types.SentimentPositive, types.Float(0.01), nil),
		fd("B", d(3), types.SentimentPositive, types.Float(0.01), nil),
		fd("C", d(3), types.SentimentNegative, types.Float(-0.01), nil),
		fd("D", d(3), types.SentimentNegative, types.Float(-0.01), nil),
		fd("A", d(4), types.SentimentPositive, types.Float(0.02), nil),
	}, 2)

	if len(days) != 2 {
		t.Fatalf("got %d portfolio days, want 2", len(days))
	}
	if days[0].Date != d(3) || days[1].Date != d(4) {
		t.Errorf("dates not sorted: %v, %v", days[0].Date, days[1].Date)
	}
	if days[0].IRLongShort == nil {
		t.Error("June 3 should be eligible for long-short")
	}
	if days[1].IRLongShort != nil {
		t.Error("June 4's single positive name must not inherit eligibility")
	}
}
