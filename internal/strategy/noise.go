package strategy

import (
	"math"

	"github.com/pkg/errors"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

var (
	// ErrFlatCandle: high == low leaves the noise ratio undefined.
	// Callers exclude the asset, they never substitute zero.
	ErrFlatCandle = errors.New("flat candle: high equals low")

	ErrNotEnoughCandles = errors.New("not enough candles")
)

// NoiseScore measures how much of a day's high-low range is consumed
// by net movement: 1 - |open-close|/(high-low). Low noise means a
// clean directional range.
func NoiseScore(c models.Candle) (float64, error) {
	if c.High == c.Low {
		return 0, ErrFlatCandle
	}
	return 1 - math.Abs(c.Open-c.Close)/(c.High-c.Low), nil
}

// SmoothedNoise averages the daily noise over the trailing window
// ending at the second-to-last candle. The last row is the current
// in-progress day, so the evaluation point is the most recently
// closed one; that needs window+1 rows in total.
func SmoothedNoise(cs []models.Candle, window int) (float64, error) {
	if len(cs) < window+1 {
		return 0, errors.Wrapf(ErrNotEnoughCandles, "need %d, have %d", window+1, len(cs))
	}

	sum := 0.0
	for _, c := range cs[len(cs)-1-window : len(cs)-1] {
		n, err := NoiseScore(c)
		if err != nil {
			return 0, err
		}
		sum += n
	}
	return sum / float64(window), nil
}
