package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// MarketBuy submits a market buy for units of ticker against KRW.
func (c *Client) MarketBuy(ctx context.Context, ticker string, units float64) (models.OrderResult, error) {
	return c.marketOrder(ctx, "/trade/market_buy", ticker, units)
}

// MarketSell submits a full or partial market sell for units of ticker.
func (c *Client) MarketSell(ctx context.Context, ticker string, units float64) (models.OrderResult, error) {
	return c.marketOrder(ctx, "/trade/market_sell", ticker, units)
}

func (c *Client) marketOrder(ctx context.Context, endpoint, ticker string, units float64) (models.OrderResult, error) {
	params := url.Values{}
	params.Set("units", strconv.FormatFloat(units, 'f', 4, 64))
	params.Set("order_currency", ticker)
	params.Set("payment_currency", "KRW")

	var payload orderResponse
	if err := c.postPrivate(ctx, endpoint, params, &payload); err != nil {
		return models.OrderResult{}, err
	}
	if payload.Status != statusOK {
		return models.OrderResult{}, fmt.Errorf("bithumb order %s %s rejected: status=%s msg=%s",
			endpoint, ticker, payload.Status, payload.Message)
	}

	filled := 0.0
	for _, cont := range payload.Data {
		u, err := strconv.ParseFloat(cont.Units, 64)
		if err != nil {
			return models.OrderResult{}, fmt.Errorf("order %s cont units: %w", ticker, err)
		}
		filled += u
	}
	return models.OrderResult{OrderID: payload.OrderID, Units: filled}, nil
}
