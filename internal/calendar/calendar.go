// Package calendar maps raw story timestamps to trading dates and the
// intraday/overnight classification used by the return calculator.
package calendar

import (
	"fmt"
	"time"

	"news-event-returns/internal/types"
)

const (
	// Trading-day rollover: news at or after 16:00 local belongs to the
	// next session.
	rolloverMinute = 16 * 60

	// Regular session window for the intraday flag, end-exclusive.
	sessionOpenMinute  = 9*60 + 30
	sessionCloseMinute = 16 * 60

	// Initial-reaction horizon for intraday stories.
	reactionHorizon = 15 * time.Minute
)

// Normalizer converts timestamps from their origin timezone to the exchange's
// local timezone and derives trading-day attributes. It is pure and safe for
// concurrent use.
type Normalizer struct {
	origin *time.Location
	local  *time.Location
}

// New builds a Normalizer for the given origin and exchange timezones.
// Naive timestamps are interpreted as already being in originTZ.
func New(originTZ, localTZ string) (*Normalizer, error) {
	origin, err := time.LoadLocation(originTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid origin timezone %q: %w", originTZ, err)
	}
	local, err := time.LoadLocation(localTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid local timezone %q: %w", localTZ, err)
	}
	return &Normalizer{origin: origin, local: local}, nil
}

// Origin is the timezone zone-less input timestamps are interpreted in.
// Readers use it when parsing naive timestamp columns.
func (n *Normalizer) Origin() *time.Location { return n.origin }

func (n *Normalizer) localize(ts time.Time) time.Time {
	return ts.In(n.local)
}

// minuteOfDay returns minutes since local midnight. Seconds are dropped,
// which keeps both boundaries exact: 09:29:59 truncates to minute 569
// (pre-open) and 15:59:59 to minute 959 (still in-session).
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// TradingDate maps ts to its trading date: the local calendar date, rolled to
// the next calendar day for timestamps at or after 16:00 local.
func (n *Normalizer) TradingDate(ts time.Time) types.Date {
	local := n.localize(ts)
	d := types.DateOf(local)
	if minuteOfDay(local) >= rolloverMinute {
		d = d.AddDays(1)
	}
	return d
}

// IsIntraday reports whether ts falls in the regular session window
// [09:30:00, 16:00:00) local time. Exactly 09:30:00 is intraday; exactly
// 16:00:00 is not.
func (n *Normalizer) IsIntraday(ts time.Time) bool {
	local := n.localize(ts)
	m := minuteOfDay(local)
	return m >= sessionOpenMinute && m < sessionCloseMinute
}

// TargetMinute returns the t+15 quote-join key for an intraday story as
// minutes since local midnight, floored to the minute. For overnight stories
// it returns -1.
func (n *Normalizer) TargetMinute(ts time.Time) int {
	if !n.IsIntraday(ts) {
		return -1
	}
	t15 := n.localize(ts).Add(reactionHorizon).Truncate(time.Minute)
	return minuteOfDay(t15)
}

// Normalize derives all trading-day attributes of ts in one call. The date
// rollover and the intraday window are evaluated on the same local instant
// but are independent: a 15:59 story is intraday and same-day, a 16:00 story
// is overnight and next-day, a 08:00 story is overnight yet same-day.
func (n *Normalizer) Normalize(ts time.Time) (date types.Date, isIntraday bool, targetMinute int) {
	return n.TradingDate(ts), n.IsIntraday(ts), n.TargetMinute(ts)
}
