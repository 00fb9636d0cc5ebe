package runner

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// printStatus writes the per-ticker snapshot: current price against
// target and trend, market direction, holding flag. Red for a rising
// market, blue for a falling one (KRW market convention).
func (r *Runner) printStatus(now time.Time, prices map[string]float64) {
	fmt.Fprintln(r.out, strings.Repeat("-", 60))
	fmt.Fprintln(r.out, now.Format(time.DateTime))

	tickers := r.st.Portfolio.Tickers()
	sort.Strings(tickers)

	for _, ticker := range tickers {
		entry := r.st.Portfolio[ticker]
		price, ok := prices[ticker]
		if !ok {
			continue
		}

		market := "\033[34mfalling"
		if price > entry.Target && price > entry.Trend {
			market = "\033[31mrising"
		}
		holding := "\033[0mnot held"
		if r.st.Holdings[ticker] {
			holding = "\033[32mheld"
		}

		fmt.Fprintf(r.out, "\033[0m[%s] price: %10.0f, target: %10.0f, trend: %10.0f - %s\033[0m - %s\033[0m\n",
			ticker, price, entry.Target, entry.Trend, market, holding)
	}
}
