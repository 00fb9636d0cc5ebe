package service

import (
	"fmt"
	"strconv"
)

// Bithumb wraps every payload in {status, data}; "0000" means success.
const statusOK = "0000"

type tickerAllResponse struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data"`
}

type candlestickResponse struct {
	Status string          `json:"status"`
	Data   [][]interface{} `json:"data"`
}

type orderbookResponse struct {
	Status string `json:"status"`
	Data   struct {
		Asks []struct {
			Price    string `json:"price"`
			Quantity string `json:"quantity"`
		} `json:"asks"`
	} `json:"data"`
}

type balanceResponse struct {
	Status string            `json:"status"`
	Data   map[string]string `json:"data"`
}

type orderResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Data    []struct {
		ContID string `json:"cont_id"`
		Units  string `json:"units"`
		Price  string `json:"price"`
	} `json:"data"`
}

// asFloat coerces the mixed string/number values Bithumb returns
// inside candle rows and ticker snapshots.
func asFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}
