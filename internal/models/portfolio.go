package models

// PortfolioEntry is per selected ticker, recomputed wholesale at every
// rollover and held fixed intra-day even though prices move.
type PortfolioEntry struct {
	Target float64 // breakout target: today open + K * yesterday range
	Trend  float64 // 5-day close average at the last closed day
	Invest float64 // KRW allocated to this slot
}

// Portfolio maps ticker -> entry. Replaced, never merged, at rollover.
type Portfolio map[string]*PortfolioEntry

// Tickers returns the portfolio members in map order. Order is
// irrelevant downstream.
func (p Portfolio) Tickers() []string {
	out := make([]string, 0, len(p))
	for t := range p {
		out = append(out, t)
	}
	return out
}
