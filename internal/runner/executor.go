package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/seo92js/bithumb-trading-bot/internal/notify"
	"github.com/seo92js/bithumb-trading-bot/pkg/logger"
)

// MinOrderQty is the exchange-imposed minimum order quantity for a
// given price. Orders below it are rejected, so the tiers must match
// the exchange exactly.
func MinOrderQty(price float64) float64 {
	switch {
	case price < 100:
		return 10
	case price < 1000:
		return 1
	case price < 10000:
		return 0.1
	case price < 100000:
		return 0.01
	case price < 1000000:
		return 0.001
	default:
		return 0.0001
	}
}

// Executor owns buy/sell execution and the holding transitions.
// Order attempts are paced through a token bucket so a burst of
// eligible tickers does not trip the exchange rate limit.
type Executor struct {
	gw          Gateway
	n           notify.Notifier
	minNotional float64
	sellRetries int
	pace        *rate.Limiter
}

func NewExecutor(gw Gateway, n notify.Notifier, minNotional float64, sellRetries int, pace time.Duration) *Executor {
	limit := rate.Inf
	if pace > 0 {
		limit = rate.Every(pace)
	}
	return &Executor{
		gw:          gw,
		n:           n,
		minNotional: minNotional,
		sellRetries: sellRetries,
		pace:        rate.NewLimiter(limit, 1),
	}
}

// TryBuy runs the buy path over the active portfolio for one tick.
// Eligible when the current price is strictly above both the breakout
// target and the trend average. A failed buy stays NotHeld and is not
// retried; per-asset failures never abort the remaining tickers.
func (e *Executor) TryBuy(ctx context.Context, st *State, prices map[string]float64) {
	for ticker, entry := range st.Portfolio {
		if st.Holdings[ticker] {
			continue
		}
		price, ok := prices[ticker]
		if !ok {
			continue
		}
		if price <= entry.Target || price <= entry.Trend {
			continue
		}

		if err := e.pace.Wait(ctx); err != nil {
			return
		}
		book, err := e.gw.OrderBook(ctx, ticker)
		if err != nil {
			logger.Error("[buy] %s orderbook: %v", ticker, err)
			continue
		}

		units := entry.Invest / book.BestAsk
		if units <= MinOrderQty(book.BestAsk) || units*book.BestAsk <= e.minNotional {
			continue
		}

		result, err := e.gw.MarketBuy(ctx, ticker, units)
		if err != nil {
			logger.Error("[buy] %s: %v", ticker, errors.Wrap(ErrOrderRejected, err.Error()))
			continue
		}

		st.Holdings[ticker] = true
		logger.Info("[buy] %s : %.4f @ ask %.0f", ticker, units, book.BestAsk)
		e.n.Sendf("[buy] %s : %.4f (order %s)", ticker, units, result.OrderID)
	}
}

// LiquidateAll sweeps the whole universe at rollover: everything the
// account holds is market-sold at the open, and every holding flag is
// reset regardless of the sell outcome.
func (e *Executor) LiquidateAll(ctx context.Context, st *State, prices map[string]float64) {
	for _, ticker := range st.Universe {
		if err := e.liquidate(ctx, ticker, prices[ticker]); err != nil {
			logger.Error("[sell] %s: %v", ticker, err)
			if errors.Is(err, ErrRetryExhausted) {
				e.n.Sendf("[sell] %s: retries exhausted, position stays until next rollover", ticker)
			}
		}
		st.Holdings[ticker] = false
	}
}

func (e *Executor) liquidate(ctx context.Context, ticker string, price float64) error {
	if price <= 0 {
		// no price this sweep, the tier is unknown; next rollover
		// picks the position up again
		return nil
	}

	bal, err := e.gw.Balance(ctx, ticker)
	if err != nil {
		return errors.Wrapf(err, "balance %s", ticker)
	}
	units := bal.Available
	if units < MinOrderQty(price) {
		return nil
	}

	if err := e.pace.Wait(ctx); err != nil {
		return err
	}
	if _, err := e.gw.MarketSell(ctx, ticker, units); err == nil {
		logger.Info("[sell] %s : %.4f", ticker, units)
		e.n.Sendf("[sell] %s : %.4f", ticker, units)
		return nil
	}
	return e.retrySell(ctx, ticker, units)
}

// retrySell re-submits a failed liquidation with an explicit attempt
// counter. Exhausting the bound is terminal for this rollover.
func (e *Executor) retrySell(ctx context.Context, ticker string, units float64) error {
	for attempt := 1; attempt <= e.sellRetries; attempt++ {
		if err := e.pace.Wait(ctx); err != nil {
			return err
		}
		_, err := e.gw.MarketSell(ctx, ticker, units)
		if err == nil {
			logger.Info("[retry sell] %s : %.4f (attempt %d)", ticker, units, attempt)
			e.n.Sendf("[sell] %s : %.4f", ticker, units)
			return nil
		}
		logger.Error("[retry sell] %s attempt %d/%d: %v", ticker, attempt, e.sellRetries, err)
	}
	return errors.Wrapf(ErrRetryExhausted, "%s units=%.4f", ticker, units)
}
