// Package portfolio builds daily equal-weighted long-only, short-only, and
// long-short portfolios from firm-day sentiment observations.
package portfolio

import (
	"sort"

	"news-event-returns/internal/types"
)

// DefaultMinLegSize is the single-name risk control: a long-short return is
// only reported when both legs held at least this many firm-days.
const DefaultMinLegSize = 2

type dayGroup struct {
	positive []types.FirmDay
	negative []types.FirmDay
	neutral  int
}

// legMean averages one metric over a leg, excluding nil observations. An
// empty leg yields nil, never zero.
func legMean(leg []types.FirmDay, metric func(types.FirmDay) *float64) *float64 {
	var sum float64
	var n int
	for _, fd := range leg {
		if v := metric(fd); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return types.Float(sum / float64(n))
}

func negate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return types.Float(-*v)
}

// longShort subtracts the un-negated short mean from the long mean with
// nullable arithmetic: the difference exists only when both operands do.
// The eligibility gate is applied by the caller on leg sizes.
func longShort(long, short *float64) *float64 {
	if long == nil || short == nil {
		return nil
	}
	return types.Float(*long - *short)
}

// Build produces one PortfolioDay per distinct date in firmDays, each date
// processed independently. minLegSize < 1 falls back to DefaultMinLegSize.
func Build(firmDays []types.FirmDay, minLegSize int) []types.PortfolioDay {
	if minLegSize < 1 {
		minLegSize = DefaultMinLegSize
	}

	groups := make(map[types.Date]*dayGroup)
	for _, fd := range firmDays {
		g := groups[fd.Date]
		if g == nil {
			g = &dayGroup{}
			groups[fd.Date] = g
		}
		switch fd.Sentiment {
		case types.SentimentPositive:
			g.positive = append(g.positive, fd)
		case types.SentimentNegative:
			g.negative = append(g.negative, fd)
		default:
			g.neutral++
		}
	}

	ir := func(fd types.FirmDay) *float64 { return fd.InitialReaction }
	drift := func(fd types.FirmDay) *float64 { return fd.Drift }

	out := make([]types.PortfolioDay, 0, len(groups))
	for date, g := range groups {
		irLong := legMean(g.positive, ir)
		irShort := legMean(g.negative, ir)
		drLong := legMean(g.positive, drift)
		drShort := legMean(g.negative, drift)

		pd := types.PortfolioDay{
			Date:      date,
			NPositive: len(g.positive),
			NNegative: len(g.negative),
			NNeutral:  g.neutral,
			// Short-only is sign-flipped so a positive value means the
			// short book gained.
			IRLongOnly:     irLong,
			IRShortOnly:    negate(irShort),
			DriftLongOnly:  drLong,
			DriftShortOnly: negate(drShort),
		}
		if len(g.positive) >= minLegSize && len(g.negative) >= minLegSize {
			pd.IRLongShort = longShort(irLong, irShort)
			pd.DriftLongShort = longShort(drLong, drShort)
		}
		out = append(out, pd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
