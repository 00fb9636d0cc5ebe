package runner

import (
	"time"

	"github.com/seo92js/bithumb-trading-bot/internal/models"
)

// State is the scheduler-owned strategy state, threaded through each
// tick instead of living in ambient globals. Only the runner goroutine
// mutates it.
type State struct {
	// Mid is the next rollover boundary: the nearest local midnight
	// strictly after the last rollover.
	Mid time.Time

	// Universe is the full tradable ticker list for this run.
	Universe []string

	// Portfolio is the active selection; replaced wholesale at rollover.
	Portfolio models.Portfolio

	// Holdings spans the whole universe, not just the portfolio: the
	// liquidation sweep covers positions whose ticker has since
	// rotated out of the selection.
	Holdings map[string]bool
}

func NewState(universe []string, mid time.Time) *State {
	holdings := make(map[string]bool, len(universe))
	for _, t := range universe {
		holdings[t] = false
	}
	return &State{
		Mid:       mid,
		Universe:  universe,
		Portfolio: models.Portfolio{},
		Holdings:  holdings,
	}
}

// HeldCount reports how many tickers are currently held.
func (s *State) HeldCount() int {
	n := 0
	for _, held := range s.Holdings {
		if held {
			n++
		}
	}
	return n
}
