package runner

import "github.com/pkg/errors"

var (
	// ErrOrderRejected: the exchange declined an order or it fell
	// below the minimum quantity/notional. Buys are not retried.
	ErrOrderRejected = errors.New("order rejected")

	// ErrRetryExhausted: a liquidation ran out of retries. The
	// position stays open until the next rollover sweep.
	ErrRetryExhausted = errors.New("sell retries exhausted")
)
