package scheduler

import (
	"context"
	"time"

	"swapmarket/utils"
)

// OfferExpirer is the slice of the offer engine the scheduler drives.
type OfferExpirer interface {
	ExpireOffers(now time.Time) (int, error)
}

// TradeExpirer is the slice of the trade engine the scheduler drives.
type TradeExpirer interface {
	ExpireTrades(now time.Time) (int, error)
}

// Scheduler periodically sweeps offers and trades past their phase deadlines.
// It may run as multiple independent instances: the expiry operations are
// idempotent compare-and-swap transitions, so at-least-once firing is safe and
// a lost race on any single entity is a no-op.
type Scheduler struct {
	offers   OfferExpirer
	trades   TradeExpirer
	interval time.Duration
}

// NewScheduler creates a new deadline scheduler.
func NewScheduler(offers OfferExpirer, trades TradeExpirer, interval time.Duration) *Scheduler {
	return &Scheduler{
		offers:   offers,
		trades:   trades,
		interval: interval,
	}
}

// Run starts the sweep loop and blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("deadline scheduler started", map[string]any{"interval": s.interval.String()})

	for {
		select {
		case <-ctx.Done():
			utils.Info("deadline scheduler stopping", nil)
			return
		case <-ticker.C:
			s.Sweep(time.Now().UTC())
		}
	}
}

// Sweep runs one expiration pass. Exposed for tests and for one-shot runs.
func (s *Scheduler) Sweep(now time.Time) {
	expired, err := s.offers.ExpireOffers(now)
	if err != nil {
		utils.Error("offer expiration sweep failed", map[string]any{"error": err.Error()})
	} else if expired > 0 {
		utils.Info("expired offers", map[string]any{"count": expired})
	}

	transitioned, err := s.trades.ExpireTrades(now)
	if err != nil {
		utils.Error("trade expiration sweep failed", map[string]any{"error": err.Error()})
	} else if transitioned > 0 {
		utils.Info("transitioned deadline-passed trades", map[string]any{"count": transitioned})
	}
}
