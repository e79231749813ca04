package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	model "swapmarket/internal/models"
)

// Catalog is the product-listing collaborator. The engine only reads listing
// snapshots; it never mutates the catalog.
type Catalog interface {
	GetListing(ctx context.Context, productID string) (model.Product, error)
}

// Payment abstracts the escrow-style fund lifecycle. Every call is
// side-effecting and invoked with a bounded timeout; a failure leaves the
// negotiation in its pre-call phase for retry.
type Payment interface {
	HoldFunds(ctx context.Context, payerID string, amount decimal.Decimal) (holdID string, err error)
	CaptureFunds(ctx context.Context, holdID string) error
	ReleaseFunds(ctx context.Context, holdID, recipientID string) error
	RefundFunds(ctx context.Context, holdID string) error
}

// Notifier delivers fire-and-forget user notifications. Errors are logged by
// implementations, never surfaced to the negotiation flow.
type Notifier interface {
	Notify(userID, eventType string, payload map[string]any)
}

// Orders is the order-subsystem collaborator that takes over fulfillment of an
// accepted offer.
type Orders interface {
	CreateOrderFromOffer(ctx context.Context, offerID string, amount decimal.Decimal) error
}
