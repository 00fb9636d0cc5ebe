package strategy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

func TestBreakoutTarget(t *testing.T) {
	cs := []models.Candle{
		{Open: 95, High: 110, Low: 90, Close: 100}, // yesterday: range 20
		{Open: 100, High: 105, Low: 99, Close: 103},
	}

	target, err := BreakoutTarget(cs, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, target, 1e-9)
}

func TestBreakoutTargetMonotonicInK(t *testing.T) {
	cs := []models.Candle{
		{Open: 95, High: 118, Low: 87, Close: 100},
		{Open: 101, High: 105, Low: 99, Close: 103},
	}

	prev := -1.0
	for _, k := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		target, err := BreakoutTarget(cs, k)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, target, prev)
		prev = target
	}
}

func TestBreakoutTargetNotEnoughCandles(t *testing.T) {
	_, err := BreakoutTarget([]models.Candle{{Open: 100, High: 110, Low: 90, Close: 105}}, 0.5)
	assert.True(t, errors.Is(err, ErrNotEnoughCandles))
}

func TestTrendAverage(t *testing.T) {
	cs := []models.Candle{
		{Close: 100}, {Close: 110}, {Close: 120}, {Close: 130}, {Close: 140},
		{Close: 999}, // in-progress day, excluded
	}

	trend, err := TrendAverage(cs, 5)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, trend, 1e-9)
}

func TestTrendAverageNotEnoughCandles(t *testing.T) {
	cs := []models.Candle{{Close: 100}, {Close: 110}, {Close: 120}, {Close: 130}, {Close: 140}}

	_, err := TrendAverage(cs, 5)
	assert.True(t, errors.Is(err, ErrNotEnoughCandles))
}
