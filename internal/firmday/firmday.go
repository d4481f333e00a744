// Package firmday collapses story-level event returns into one sentiment
// observation per (ticker, trading date).
package firmday

import (
	"sort"

	"news-event-returns/internal/types"
)

type key struct {
	ticker string
	date   types.Date
}

type bucket struct {
	scoreSum float64
	n        int
	ir       []float64
	drift    []float64
}

func mean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return types.Float(sum / float64(len(vals)))
}

// classify thresholds the aggregated score with strict inequalities; exactly
// 0.5 is neutral. The per-story categorical labels play no part here, so
// several weakly-positive stories can still average to a negative firm-day.
func classify(avgScore float64) string {
	switch {
	case avgScore > 0.5:
		return types.SentimentPositive
	case avgScore < 0.5:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// Aggregate groups event returns by (ticker, date) and averages scores and
// returns. Nil return values are excluded from the means, not treated as
// zero. Output is sorted by (date, ticker) for stable downstream runs.
func Aggregate(events []types.EventReturn) []types.FirmDay {
	buckets := make(map[key]*bucket)
	for _, ev := range events {
		k := key{ev.Ticker, ev.Date}
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
		}
		b.scoreSum += ev.Score
		b.n++
		if ev.InitialReaction != nil {
			b.ir = append(b.ir, *ev.InitialReaction)
		}
		if ev.Drift != nil {
			b.drift = append(b.drift, *ev.Drift)
		}
	}

	out := make([]types.FirmDay, 0, len(buckets))
	for k, b := range buckets {
		avg := b.scoreSum / float64(b.n)
		out = append(out, types.FirmDay{
			Ticker:          k.ticker,
			Date:            k.date,
			AvgScore:        avg,
			NStories:        b.n,
			InitialReaction: mean(b.ir),
			Drift:           mean(b.drift),
			Sentiment:       classify(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}
