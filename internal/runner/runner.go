package runner

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
	"github.com/seo92js/bithumb-trading-bot/internal/modules/config"
	healthsvc "github.com/seo92js/bithumb-trading-bot/internal/modules/health/service"
	"github.com/seo92js/bithumb-trading-bot/internal/notify"
	"github.com/seo92js/bithumb-trading-bot/internal/strategy"
	"github.com/seo92js/bithumb-trading-bot/pkg/logger"
)

// krwBalanceTicker: any ticker works for reading the KRW side of the
// account, the exchange returns it on every balance call.
const krwBalanceTicker = "BTC"

// Runner drives the daily cycle: one goroutine, one blocking gateway
// call at a time. Rollover is keyed off the tracked boundary rather
// than a wall-clock window, so a missed tick can delay a rollover but
// never skip it, and a second tick inside the same boundary is a no-op.
type Runner struct {
	cfg    *config.Config
	gw     Gateway
	sel    *strategy.Selector
	exec   *Executor
	n      notify.Notifier
	health *healthsvc.State

	st  *State
	out io.Writer
}

func New(
	cfg *config.Config,
	gw Gateway,
	sel *strategy.Selector,
	exec *Executor,
	n notify.Notifier,
	health *healthsvc.State,
) *Runner {
	return &Runner{
		cfg:    cfg,
		gw:     gw,
		sel:    sel,
		exec:   exec,
		n:      n,
		health: health,
		out:    os.Stdout,
	}
}

func (r *Runner) Start(ctx context.Context) {
	if err := r.bootstrap(ctx); err != nil {
		logger.Error("bootstrap: %v", err)
		return
	}

	ticker := time.NewTicker(r.cfg.TickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Tick(ctx, now)
		}
	}
}

// bootstrap computes the initial state once before the loop: full
// universe, first portfolio, all holdings flat.
func (r *Runner) bootstrap(ctx context.Context) error {
	universe, err := r.gw.Tickers(ctx)
	if err != nil {
		return errors.Wrap(err, "tradable tickers")
	}

	r.st = NewState(universe, nextMidnight(time.Now()))
	r.rebuildPortfolio(ctx)
	if len(r.st.Portfolio) == 0 {
		logger.Error("bootstrap: empty initial portfolio, will retry at next rollover")
	}

	r.health.MarkReady()
	logger.Info("bootstrap: universe=%d portfolio=%d next rollover %s",
		len(universe), len(r.st.Portfolio), r.st.Mid.Format(time.DateTime))
	r.n.Sendf("started: %d tickers selected of %d", len(r.st.Portfolio), len(universe))
	return nil
}

// Tick runs one polling cycle. Price fetch always precedes buy
// evaluation; a total price outage no-ops the whole tick.
func (r *Runner) Tick(ctx context.Context, now time.Time) {
	if !now.Before(r.st.Mid) {
		r.rollover(ctx, now)
	}

	prices, err := r.gw.CurrentPrices(ctx, r.st.Universe)
	if err != nil {
		logger.Error("prices: %v", err)
		return
	}

	r.printStatus(now, prices)
	r.exec.TryBuy(ctx, r.st, prices)
	r.health.MarkTick(now, r.st.HeldCount())
}

// rollover is the once-daily transition: advance the boundary first
// (the re-entry guard), liquidate the whole universe, then derive the
// new portfolio. The sweep fully completes, retries included, before
// the new selection is used.
func (r *Runner) rollover(ctx context.Context, now time.Time) {
	r.st.Mid = nextMidnight(now)
	logger.Info("rollover: next boundary %s", r.st.Mid.Format(time.DateTime))

	prices, err := r.gw.CurrentPrices(ctx, r.st.Universe)
	if err != nil {
		// flags still reset; unsold positions are caught tomorrow
		logger.Error("rollover prices: %v", err)
		prices = map[string]float64{}
	}
	r.exec.LiquidateAll(ctx, r.st, prices)

	r.rebuildPortfolio(ctx)
	r.health.MarkRollover(now)
	r.n.Sendf("rollover: %d tickers selected", len(r.st.Portfolio))
}

// rebuildPortfolio re-selects the portfolio and recomputes targets,
// trend averages and the per-slot invest amount. When the selection is
// unavailable the previous portfolio stays active rather than trading
// an empty one.
func (r *Runner) rebuildPortfolio(ctx context.Context) {
	selected, err := r.sel.Select(ctx, r.st.Universe)
	if err != nil {
		logger.Error("selection unavailable, keeping previous portfolio: %v", err)
		return
	}

	invest := r.investPerSlot(ctx)
	portfolio := models.Portfolio{}
	for _, ticker := range selected {
		cs, err := r.gw.Candles(ctx, ticker)
		if err != nil {
			logger.Error("portfolio: candles %s: %v", ticker, err)
			continue
		}
		target, err := strategy.BreakoutTarget(cs, r.cfg.K)
		if err != nil {
			logger.Error("portfolio: target %s: %v", ticker, err)
			continue
		}
		trend, err := strategy.TrendAverage(cs, r.cfg.TrendWindow)
		if err != nil {
			logger.Error("portfolio: trend %s: %v", ticker, err)
			continue
		}
		portfolio[ticker] = &models.PortfolioEntry{Target: target, Trend: trend, Invest: invest}
	}
	r.st.Portfolio = portfolio
}

// investPerSlot divides the available KRW across the fixed slot
// count. On a balance failure it returns 0, which the notional guard
// turns into "no buys until the next rollover".
func (r *Runner) investPerSlot(ctx context.Context) float64 {
	bal, err := r.gw.Balance(ctx, krwBalanceTicker)
	if err != nil {
		logger.Error("invest: balance: %v", err)
		return 0
	}
	return bal.KRWAvailable / float64(r.cfg.Slots)
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
