package strategy

import (
	"github.com/pkg/errors"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// BreakoutTarget is today's open plus k times yesterday's high-low
// range. Crossing it is the buy signal.
func BreakoutTarget(cs []models.Candle, k float64) (float64, error) {
	if len(cs) < 2 {
		return 0, errors.Wrapf(ErrNotEnoughCandles, "need 2, have %d", len(cs))
	}
	yesterday := cs[len(cs)-2]
	today := cs[len(cs)-1]
	return today.Open + (yesterday.High-yesterday.Low)*k, nil
}

// TrendAverage is the rolling close mean over the trailing window
// ending at the last closed day, same convention as SmoothedNoise.
// A buy is only taken above it.
func TrendAverage(cs []models.Candle, window int) (float64, error) {
	if len(cs) < window+1 {
		return 0, errors.Wrapf(ErrNotEnoughCandles, "need %d, have %d", window+1, len(cs))
	}

	sum := 0.0
	for _, c := range cs[len(cs)-1-window : len(cs)-1] {
		sum += c.Close
	}
	return sum / float64(window), nil
}
