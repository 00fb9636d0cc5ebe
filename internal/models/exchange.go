package models

// OrderBook is a snapshot of the sell side, best ask first.
type OrderBook struct {
	BestAsk float64
	Asks    []OrderBookLevel
}

type OrderBookLevel struct {
	Price    float64
	Quantity float64
}

// Balance for a single ticker plus the KRW side of the account.
type Balance struct {
	Available    float64 // units free to sell
	InUse        float64 // units locked in open orders
	KRWAvailable float64
}

// OrderResult is a filled market order. Absence of a result is always
// an error, never a zero-value success.
type OrderResult struct {
	OrderID string
	Units   float64
}
