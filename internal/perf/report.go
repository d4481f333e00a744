package perf

import (
	"fmt"
	"io"
	"math"
	"strings"
)

var metricTitles = map[string]string{
	"initial_reaction": "Initial Reaction",
	"drift":            "Drift",
}

var legTitles = map[string]string{
	"long_short": "Long-Short",
	"long_only":  "Long-Only",
	"short_only": "Short-Only",
}

// WriteReport renders the summary as a human-readable table. The exact
// formatting is not a compatibility surface.
func (s *Summary) WriteReport(w io.Writer) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "News Event Study — Portfolio Performance")
	fmt.Fprintln(w, rule)

	for _, st := range s.Series {
		name := fmt.Sprintf("%s | %s", metricTitles[st.Metric], legTitles[st.Leg])
		if !st.HasData {
			fmt.Fprintf(w, "\n  %s: no data\n", name)
			continue
		}

		fmt.Fprintf(w, "\n  %s:\n", name)
		fmt.Fprintf(w, "    Hit Rate     : %.1f%%\n", st.HitRate*100)
		fmt.Fprintf(w, "    Mean Return  : %.4f%% daily\n", st.Mean*100)
		if st.Annualized {
			if math.IsNaN(st.Sharpe) {
				fmt.Fprintf(w, "    Sharpe Ratio : NaN (zero dispersion)\n")
			} else {
				fmt.Fprintf(w, "    Sharpe Ratio : %.2f (annualized)\n", st.Sharpe)
			}
		}
		fmt.Fprintf(w, "    Trading Days : %d\n", st.Days)
	}

	fmt.Fprintf(w, "\n  Firm-Day Observations: %d\n", s.FirmDays)
	fmt.Fprintf(w, "  Trading Days (total): %d\n", s.TradingDays)
	fmt.Fprintln(w, rule)
}
