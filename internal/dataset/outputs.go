package dataset

import (
	"path/filepath"

	"news-event-returns/internal/types"
)

// EventReturnRow is the persisted form of one story-level event return.
// Pointer fields serialize as empty (csv) or null (parquet) when absent.
type EventReturnRow struct {
	StoryID    string  `csv:"story_id" parquet:"story_id"`
	Ticker     string  `csv:"ticker" parquet:"ticker"`
	Date       string  `csv:"date" parquet:"date"`
	Label      string  `csv:"label" parquet:"label"`
	Score      float64 `csv:"score" parquet:"score"`
	IsIntraday bool    `csv:"is_intraday" parquet:"is_intraday"`

	MidT15    *float64 `csv:"mid_t15" parquet:"mid_t15,optional"`
	Open      *float64 `csv:"open" parquet:"open,optional"`
	Close     *float64 `csv:"close" parquet:"close,optional"`
	PrevClose *float64 `csv:"prev_close" parquet:"prev_close,optional"`
	NextClose *float64 `csv:"next_close" parquet:"next_close,optional"`

	InitialReaction *float64 `csv:"initial_reaction" parquet:"initial_reaction,optional"`
	Drift           *float64 `csv:"drift" parquet:"drift,optional"`
}

// PortfolioDayRow is the persisted form of one daily portfolio rebalance.
type PortfolioDayRow struct {
	Date      string `csv:"date" parquet:"date"`
	NPositive int    `csv:"n_positive" parquet:"n_positive"`
	NNegative int    `csv:"n_negative" parquet:"n_negative"`
	NNeutral  int    `csv:"n_neutral" parquet:"n_neutral"`

	IRLongOnly     *float64 `csv:"ir_long_only" parquet:"ir_long_only,optional"`
	IRShortOnly    *float64 `csv:"ir_short_only" parquet:"ir_short_only,optional"`
	IRLongShort    *float64 `csv:"ir_long_short" parquet:"ir_long_short,optional"`
	DriftLongOnly  *float64 `csv:"drift_long_only" parquet:"drift_long_only,optional"`
	DriftShortOnly *float64 `csv:"drift_short_only" parquet:"drift_short_only,optional"`
	DriftLongShort *float64 `csv:"drift_long_short" parquet:"drift_long_short,optional"`
}

// WriteEventReturns replaces the event-return output table.
func WriteEventReturns(outDir, format string, events []types.EventReturn) (string, error) {
	rows := make([]EventReturnRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, EventReturnRow{
			StoryID:         ev.StoryID,
			Ticker:          ev.Ticker,
			Date:            ev.Date.String(),
			Label:           ev.Label,
			Score:           ev.Score,
			IsIntraday:      ev.IsIntraday,
			MidT15:          ev.MidT15,
			Open:            ev.Open,
			Close:           ev.Close,
			PrevClose:       ev.PrevClose,
			NextClose:       ev.NextClose,
			InitialReaction: ev.InitialReaction,
			Drift:           ev.Drift,
		})
	}
	path := filepath.Join(outDir, "event_returns."+format)
	return path, writeRows(path, format, rows)
}

// WritePortfolioDays replaces the portfolio-day output table.
func WritePortfolioDays(outDir, format string, days []types.PortfolioDay) (string, error) {
	rows := make([]PortfolioDayRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, PortfolioDayRow{
			Date:           d.Date.String(),
			NPositive:      d.NPositive,
			NNegative:      d.NNegative,
			NNeutral:       d.NNeutral,
			IRLongOnly:     d.IRLongOnly,
			IRShortOnly:    d.IRShortOnly,
			IRLongShort:    d.IRLongShort,
			DriftLongOnly:  d.DriftLongOnly,
			DriftShortOnly: d.DriftShortOnly,
			DriftLongShort: d.DriftLongShort,
		})
	}
	path := filepath.Join(outDir, "portfolio_daily."+format)
	return path, writeRows(path, format, rows)
}
