package service

import (
	"context"
	"fmt"
	"sort"
)

// Tickers returns every KRW-market symbol currently tradable.
func (c *Client) Tickers(ctx context.Context) ([]string, error) {
	var payload tickerAllResponse
	if err := c.getPublic(ctx, "/public/ticker/ALL_KRW", &payload); err != nil {
		return nil, err
	}
	if payload.Status != statusOK {
		return nil, fmt.Errorf("bithumb ticker error: status=%s", payload.Status)
	}

	out := make([]string, 0, len(payload.Data))
	for ticker, v := range payload.Data {
		// the snapshot carries a "date" field next to the per-ticker objects
		if _, ok := v.(map[string]interface{}); !ok {
			continue
		}
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out, nil
}
