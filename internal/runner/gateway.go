package runner

import (
	"context"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// Gateway is the exchange capability the strategy runs against. Every
// call is fallible and blocking; an absent result is a failure, never
// a zero-equivalent success.
type Gateway interface {
	Tickers(ctx context.Context) ([]string, error)
	Candles(ctx context.Context, ticker string) ([]models.Candle, error)
	CurrentPrices(ctx context.Context, tickers []string) (map[string]float64, error)
	OrderBook(ctx context.Context, ticker string) (models.OrderBook, error)
	Balance(ctx context.Context, ticker string) (models.Balance, error)
	MarketBuy(ctx context.Context, ticker string, units float64) (models.OrderResult, error)
	MarketSell(ctx context.Context, ticker string, units float64) (models.OrderResult, error)
}
