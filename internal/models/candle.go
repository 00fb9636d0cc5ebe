package models

// Candle is one daily OHLC row. Histories are ascending by day,
// the last row is the current in-progress day.
type Candle struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
}
