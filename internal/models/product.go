package models

import "github.com/shopspring/decimal"

// Product statuses as reported by the catalog collaborator.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product is the engine's snapshot of a catalog listing. The catalog service
// owns the listing; the engine only needs price, owner and status to validate
// a negotiation.
type Product struct {
	ProductID string          `json:"product_id"`
	OwnerID   string          `json:"owner_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
}

// Purchasable reports whether the listing can be the subject of a new
// negotiation at all.
func (p Product) Purchasable() bool {
	return p.Status == ProductActive
}
