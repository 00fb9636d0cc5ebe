package service

import (
	"context"
	"fmt"
)

// CurrentPrices fetches one ALL-market snapshot and maps the closing
// price for each requested ticker. Tickers missing from the snapshot
// are omitted rather than reported as zero.
func (c *Client) CurrentPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	var payload tickerAllResponse
	if err := c.getPublic(ctx, "/public/ticker/ALL_KRW", &payload); err != nil {
		return nil, err
	}
	if payload.Status != statusOK {
		return nil, fmt.Errorf("bithumb ticker error: status=%s", payload.Status)
	}

	prices := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		obj, ok := payload.Data[ticker].(map[string]interface{})
		if !ok {
			continue
		}
		price, err := asFloat(obj["closing_price"])
		if err != nil {
			continue
		}
		prices[ticker] = price
	}
	return prices, nil
}
