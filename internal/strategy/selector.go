package strategy

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
	"github.com/seo92js/bithumb-trading-bot/pkg/logger"
)

// ErrSelectionUnavailable means the whole universe failed to score.
// The caller keeps the previous portfolio instead of trading an
// empty one.
var ErrSelectionUnavailable = errors.New("portfolio selection unavailable")

// CandleSource is the slice of the exchange gateway the selector needs.
type CandleSource interface {
	Candles(ctx context.Context, ticker string) ([]models.Candle, error)
}

type SelectorConfig struct {
	NoiseWindow int     // trailing days for noise smoothing
	MaxNoise    float64 // strict ceiling on smoothed noise
	TopN        int     // lowest-noise cut taken before the ceiling
}

// Selector ranks the tradable universe by smoothed noise and keeps
// the quietest names.
type Selector struct {
	src    CandleSource
	cfg    SelectorConfig
	ignore map[string]bool
}

func NewSelector(src CandleSource, cfg SelectorConfig, ignoreTickers []string) *Selector {
	ignore := make(map[string]bool, len(ignoreTickers))
	for _, t := range ignoreTickers {
		ignore[t] = true
	}
	return &Selector{src: src, cfg: cfg, ignore: ignore}
}

type scored struct {
	ticker string
	noise  float64
}

// Select scores every ticker, sorts ascending and returns the TopN
// lowest-noise tickers strictly below MaxNoise. A ticker that cannot
// be scored is skipped; if nothing scores at all the selection is
// unavailable.
func (s *Selector) Select(ctx context.Context, tickers []string) ([]string, error) {
	list := make([]scored, 0, len(tickers))
	for _, ticker := range tickers {
		if s.ignore[ticker] {
			continue
		}
		cs, err := s.src.Candles(ctx, ticker)
		if err != nil {
			logger.Error("selector: candles %s: %v", ticker, err)
			continue
		}
		noise, err := SmoothedNoise(cs, s.cfg.NoiseWindow)
		if err != nil {
			continue
		}
		list = append(list, scored{ticker: ticker, noise: noise})
	}
	if len(list) == 0 {
		return nil, ErrSelectionUnavailable
	}

	sort.Slice(list, func(i, j int) bool { return list[i].noise < list[j].noise })
	if len(list) > s.cfg.TopN {
		list = list[:s.cfg.TopN]
	}

	out := make([]string, 0, len(list))
	for _, sc := range list {
		if sc.noise < s.cfg.MaxNoise {
			out = append(out, sc.ticker)
		}
	}
	return out, nil
}
