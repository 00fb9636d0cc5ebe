package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/seo92js/bithumb-trading-bot/internal/modules/bithumb"
	"github.com/seo92js/bithumb-trading-bot/internal/modules/config"
	"github.com/seo92js/bithumb-trading-bot/internal/modules/health"
	"github.com/seo92js/bithumb-trading-bot/internal/notify"
	"github.com/seo92js/bithumb-trading-bot/internal/runner"
	"github.com/seo92js/bithumb-trading-bot/pkg/logger"
	"github.com/seo92js/bithumb-trading-bot/pkg/tracing"
)

const serviceName = "bithumb-trading-bot"

func main() {
	logger.SetServiceName(serviceName)
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			// Notifier: stdout unless Telegram is configured
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
		),
		config.Module(),
		bithumb.Module(),
		health.Module(),
		runner.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			if cfg.Jaeger.Host == "" {
				return
			}
			tracing.SetServiceName(serviceName)
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("jaeger init: %v", err)
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					closeTracer()
					return nil
				},
			})
		}),
	)
	app.Run()
}
