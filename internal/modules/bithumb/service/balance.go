package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// Balance returns the account balance for one ticker along with the
// available KRW side.
func (c *Client) Balance(ctx context.Context, ticker string) (models.Balance, error) {
	params := url.Values{}
	params.Set("currency", ticker)

	var payload balanceResponse
	if err := c.postPrivate(ctx, "/info/balance", params, &payload); err != nil {
		return models.Balance{}, err
	}
	if payload.Status != statusOK {
		return models.Balance{}, fmt.Errorf("bithumb balance %s error: status=%s", ticker, payload.Status)
	}

	key := strings.ToLower(ticker)
	available, err := balanceField(payload.Data, "available_"+key)
	if err != nil {
		return models.Balance{}, fmt.Errorf("balance %s: %w", ticker, err)
	}
	inUse, err := balanceField(payload.Data, "in_use_"+key)
	if err != nil {
		return models.Balance{}, fmt.Errorf("balance %s: %w", ticker, err)
	}
	krw, err := balanceField(payload.Data, "available_krw")
	if err != nil {
		return models.Balance{}, fmt.Errorf("balance %s: %w", ticker, err)
	}

	return models.Balance{Available: available, InUse: inUse, KRWAvailable: krw}, nil
}

func balanceField(data map[string]string, key string) (float64, error) {
	raw, ok := data[key]
	if !ok {
		return 0, fmt.Errorf("missing field %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
