package runner

import (
	"context"

	"go.uber.org/fx"

	"github.com/seo92js/bithumb-trading-bot/internal/modules/config"
	"github.com/seo92js/bithumb-trading-bot/internal/notify"
	"github.com/seo92js/bithumb-trading-bot/internal/strategy"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(cfg *config.Config, gw Gateway) *strategy.Selector {
				return strategy.NewSelector(gw, strategy.SelectorConfig{
					NoiseWindow: cfg.NoiseWindow,
					MaxNoise:    cfg.MaxNoise,
					TopN:        cfg.PortfolioMax,
				}, cfg.IgnoreTickers)
			},
			func(cfg *config.Config, gw Gateway, n notify.Notifier) *Executor {
				return NewExecutor(gw, n, cfg.MinNotional, cfg.SellRetries, cfg.OrderPace)
			},
			New, // *Runner
		),
		fx.Invoke(func(lc fx.Lifecycle, r *Runner, parent context.Context) {
			ctx, cancel := context.WithCancel(parent)
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go r.Start(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
