package runner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
	"github.com/seo92js/bithumb-trading-bot/internal/modules/config"
	healthsvc "github.com/seo92js/bithumb-trading-bot/internal/modules/health/service"
	"github.com/seo92js/bithumb-trading-bot/internal/notify"
	"github.com/seo92js/bithumb-trading-bot/internal/strategy"
)

func newTestRunner(gw *GatewayMock, st *State) *Runner {
	cfg := &config.Config{
		Slots:        5,
		K:            0.5,
		MaxNoise:     0.5,
		NoiseWindow:  5,
		TrendWindow:  5,
		PortfolioMax: 20,
		MinNotional:  1000,
		SellRetries:  10,
		TickEvery:    time.Second,
	}
	sel := strategy.NewSelector(gw, strategy.SelectorConfig{
		NoiseWindow: cfg.NoiseWindow,
		MaxNoise:    cfg.MaxNoise,
		TopN:        cfg.PortfolioMax,
	}, nil)
	exec := NewExecutor(gw, notify.NewStdout(), cfg.MinNotional, cfg.SellRetries, 0)

	r := New(cfg, gw, sel, exec, notify.NewStdout(), healthsvc.NewState())
	r.st = st
	r.out = io.Discard
	return r
}

// quietHistory is a six-day history with low noise: target 200,
// trend 245.
func quietHistory() []models.Candle {
	out := make([]models.Candle, 6)
	for i := range out {
		out[i] = models.Candle{Open: 150, High: 250, Low: 150, Close: 245}
	}
	return out
}

func TestRolloverOncePerBoundary(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("CurrentPrices", mock.Anything, mock.Anything).Return(map[string]float64{"A": 115}, nil)
	gw.On("Balance", mock.Anything, "A").Return(models.Balance{}, nil)
	gw.On("Candles", mock.Anything, "A").Return(nil, errors.New("api down"))

	mid := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	st := testState([]string{"A"}, models.Portfolio{})
	st.Mid = mid

	r := newTestRunner(gw, st)
	r.Tick(context.Background(), mid.Add(1*time.Second))
	r.Tick(context.Background(), mid.Add(2*time.Second))

	// the sweep ran exactly once and the boundary moved a full day
	gw.AssertNumberOfCalls(t, "Balance", 1)
	assert.Equal(t, mid.AddDate(0, 0, 1), st.Mid)
}

func TestRolloverRebuildsPortfolio(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("CurrentPrices", mock.Anything, mock.Anything).Return(map[string]float64{"A": 115}, nil)
	gw.On("Balance", mock.Anything, "A").Return(models.Balance{}, nil)
	gw.On("Balance", mock.Anything, "BTC").Return(models.Balance{KRWAvailable: 500000}, nil)
	gw.On("Candles", mock.Anything, "A").Return(quietHistory(), nil)

	st := testState([]string{"A"}, models.Portfolio{})
	st.Mid = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	r := newTestRunner(gw, st)
	r.rollover(context.Background(), st.Mid.Add(time.Second))

	entry, ok := st.Portfolio["A"]
	require.True(t, ok)
	assert.InDelta(t, 200.0, entry.Target, 1e-9)
	assert.InDelta(t, 245.0, entry.Trend, 1e-9)
	assert.InDelta(t, 100000.0, entry.Invest, 1e-9) // 500000 KRW over 5 slots
}

func TestRolloverKeepsPortfolioWhenSelectionUnavailable(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("CurrentPrices", mock.Anything, mock.Anything).Return(map[string]float64{"A": 115}, nil)
	gw.On("Balance", mock.Anything, "A").Return(models.Balance{}, nil)
	gw.On("Candles", mock.Anything, "A").Return(nil, errors.New("gateway unreachable"))

	previous := models.Portfolio{"A": {Target: 110, Trend: 108, Invest: 100000}}
	st := testState([]string{"A"}, previous)
	st.Mid = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	st.Holdings["A"] = true

	r := newTestRunner(gw, st)
	r.rollover(context.Background(), st.Mid.Add(time.Second))

	// liquidation still reset the flag, but the portfolio degraded
	// gracefully instead of emptying
	assert.False(t, st.Holdings["A"])
	assert.Equal(t, previous, st.Portfolio)
}

func TestTickNoOpsOnTotalPriceOutage(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("CurrentPrices", mock.Anything, mock.Anything).Return(nil, errors.New("gateway unreachable"))

	st := testState([]string{"A"}, models.Portfolio{
		"A": {Target: 110, Trend: 108, Invest: 100000},
	})

	r := newTestRunner(gw, st)
	r.Tick(context.Background(), time.Now())

	gw.AssertNotCalled(t, "OrderBook", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "MarketBuy", mock.Anything, mock.Anything, mock.Anything)
}

func TestTickBuysOnBreakout(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("CurrentPrices", mock.Anything, mock.Anything).Return(map[string]float64{"A": 115}, nil)
	gw.On("OrderBook", mock.Anything, "A").Return(models.OrderBook{BestAsk: 115}, nil)
	gw.On("MarketBuy", mock.Anything, "A", approx(100000.0/115.0)).
		Return(models.OrderResult{OrderID: "1", Units: 869.56}, nil)

	st := testState([]string{"A"}, models.Portfolio{
		"A": {Target: 110, Trend: 108, Invest: 100000},
	})

	r := newTestRunner(gw, st)
	r.Tick(context.Background(), time.Now())

	gw.AssertExpectations(t)
	assert.True(t, st.Holdings["A"])
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), nextMidnight(now))

	// just past midnight still points at the following day
	early := time.Date(2026, 9, 1, 0, 0, 3, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), nextMidnight(early))
}
