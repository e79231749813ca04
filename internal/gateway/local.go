package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
	"swapmarket/utils"
)

// StaticCatalog is an in-process Catalog backed by a seeded listing map.
type StaticCatalog struct {
	mu       sync.RWMutex
	listings map[string]model.Product
}

// NewStaticCatalog creates an empty catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{listings: make(map[string]model.Product)}
}

// AddListing seeds a product snapshot.
func (c *StaticCatalog) AddListing(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listings[p.ProductID] = p
}

// GetListing returns a seeded product snapshot.
func (c *StaticCatalog) GetListing(ctx context.Context, productID string) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.listings[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get listing %s: %w", productID, marketerrors.ErrProductNotFound)
	}
	return p, nil
}

// LogNotifier is a Notifier that only logs. Notification delivery is an
// external concern; the engine just fires the event.
type LogNotifier struct{}

// Notify logs the event and returns.
func (LogNotifier) Notify(userID, eventType string, payload map[string]any) {
	utils.Info("notification dispatched", map[string]any{
		"user_id": userID,
		"event":   eventType,
		"payload": payload,
	})
}

// LocalEscrow is an in-process Payment implementation that always succeeds.
// It stands in for the real escrow provider in development and tests.
type LocalEscrow struct {
	mu    sync.Mutex
	holds map[string]decimal.Decimal
}

// NewLocalEscrow creates a fresh escrow stand-in.
func NewLocalEscrow() *LocalEscrow {
	return &LocalEscrow{holds: make(map[string]decimal.Decimal)}
}

// HoldFunds records a hold and returns its id.
func (e *LocalEscrow) HoldFunds(ctx context.Context, payerID string, amount decimal.Decimal) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	holdID := utils.GenerateID()
	e.holds[holdID] = amount
	return holdID, nil
}

// CaptureFunds confirms a recorded hold.
func (e *LocalEscrow) CaptureFunds(ctx context.Context, holdID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.holds[holdID]; !ok {
		return fmt.Errorf("capture %s: %w", holdID, marketerrors.ErrDependencyFailure)
	}
	return nil
}

// ReleaseFunds drops a hold in favor of the recipient.
func (e *LocalEscrow) ReleaseFunds(ctx context.Context, holdID, recipientID string) error {
	return e.close(holdID, "release")
}

// RefundFunds drops a hold back to the payer.
func (e *LocalEscrow) RefundFunds(ctx context.Context, holdID string) error {
	return e.close(holdID, "refund")
}

func (e *LocalEscrow) close(holdID, op string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.holds[holdID]; !ok {
		return fmt.Errorf("%s %s: %w", op, holdID, marketerrors.ErrDependencyFailure)
	}
	delete(e.holds, holdID)
	return nil
}

// LogOrders is an Orders implementation that logs the fulfillment intent.
// The real order subsystem consumes these in production.
type LogOrders struct{}

// CreateOrderFromOffer logs the intent and returns.
func (LogOrders) CreateOrderFromOffer(ctx context.Context, offerID string, amount decimal.Decimal) error {
	utils.Info("order creation intent emitted", map[string]any{
		"offer_id": offerID,
		"amount":   amount.StringFixed(2),
	})
	return nil
}
