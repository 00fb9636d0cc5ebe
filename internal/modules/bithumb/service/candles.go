package service

import (
	"context"
	"fmt"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// Candles returns the daily OHLC history for a ticker, ascending by
// day with the in-progress day last.
//
// A candlestick row is [timestamp, open, close, high, low, volume].
func (c *Client) Candles(ctx context.Context, ticker string) ([]models.Candle, error) {
	var payload candlestickResponse
	if err := c.getPublic(ctx, "/public/candlestick/"+ticker+"_KRW/24h", &payload); err != nil {
		return nil, err
	}
	if payload.Status != statusOK {
		return nil, fmt.Errorf("bithumb candlestick %s error: status=%s", ticker, payload.Status)
	}

	out := make([]models.Candle, 0, len(payload.Data))
	for _, row := range payload.Data {
		if len(row) < 6 {
			return nil, fmt.Errorf("candlestick %s: short row (%d fields)", ticker, len(row))
		}
		open, err := asFloat(row[1])
		if err != nil {
			return nil, fmt.Errorf("candlestick %s open: %w", ticker, err)
		}
		closePx, err := asFloat(row[2])
		if err != nil {
			return nil, fmt.Errorf("candlestick %s close: %w", ticker, err)
		}
		high, err := asFloat(row[3])
		if err != nil {
			return nil, fmt.Errorf("candlestick %s high: %w", ticker, err)
		}
		low, err := asFloat(row[4])
		if err != nil {
			return nil, fmt.Errorf("candlestick %s low: %w", ticker, err)
		}
		out = append(out, models.Candle{Open: open, High: high, Low: low, Close: closePx})
	}
	return out, nil
}
