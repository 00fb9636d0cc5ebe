package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// OrderBook returns the sell side for a ticker, best ask first.
func (c *Client) OrderBook(ctx context.Context, ticker string) (models.OrderBook, error) {
	var payload orderbookResponse
	if err := c.getPublic(ctx, "/public/orderbook/"+ticker+"_KRW", &payload); err != nil {
		return models.OrderBook{}, err
	}
	if payload.Status != statusOK {
		return models.OrderBook{}, fmt.Errorf("bithumb orderbook %s error: status=%s", ticker, payload.Status)
	}
	if len(payload.Data.Asks) == 0 {
		return models.OrderBook{}, fmt.Errorf("orderbook %s: no asks", ticker)
	}

	book := models.OrderBook{Asks: make([]models.OrderBookLevel, 0, len(payload.Data.Asks))}
	for _, a := range payload.Data.Asks {
		price, err := strconv.ParseFloat(a.Price, 64)
		if err != nil {
			return models.OrderBook{}, fmt.Errorf("orderbook %s price: %w", ticker, err)
		}
		qty, err := strconv.ParseFloat(a.Quantity, 64)
		if err != nil {
			return models.OrderBook{}, fmt.Errorf("orderbook %s quantity: %w", ticker, err)
		}
		book.Asks = append(book.Asks, models.OrderBookLevel{Price: price, Quantity: qty})
	}
	book.BestAsk = book.Asks[0].Price
	return book, nil
}
