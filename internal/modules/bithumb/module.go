package bithumb

import (
	"go.uber.org/fx"

	"github.com/seo92js/bithumb-trading-bot/internal/modules/bithumb/service"
	"github.com/seo92js/bithumb-trading-bot/internal/modules/config"
	"github.com/seo92js/bithumb-trading-bot/internal/runner"
)

func Module() fx.Option {
	return fx.Module("bithumb",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(cfg.Bithumb.APIKey, cfg.Bithumb.APISecret)
			},
			func(c *service.Client) runner.Gateway { return c },
		),
	)
}
