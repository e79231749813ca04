package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer statuses. Accepted, rejected, expired and withdrawn are terminal.
const (
	OfferPending   = "pending"
	OfferCountered = "countered"
	OfferAccepted  = "accepted"
	OfferRejected  = "rejected"
	OfferExpired   = "expired"
	OfferWithdrawn = "withdrawn"
)

// Offer is a single-item cash negotiation between one buyer and one seller.
// ProposedBy holds the party whose amount is currently on the table; only the
// other party may accept, reject or counter it.
type Offer struct {
	OfferID    string          `json:"offer_id"`
	ProductID  string          `json:"product_id"`
	BuyerID    string          `json:"buyer_id"`
	SellerID   string          `json:"seller_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ProposedBy string          `json:"proposed_by"`
	ExpiresAt  time.Time       `json:"expires_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int64           `json:"version"`
}

// Active reports whether the offer is still open for negotiation.
func (o Offer) Active() bool {
	return o.Status == OfferPending || o.Status == OfferCountered
}

// Terminal reports whether no further transition is possible.
func (o Offer) Terminal() bool {
	switch o.Status {
	case OfferAccepted, OfferRejected, OfferExpired, OfferWithdrawn:
		return true
	}
	return false
}

// Counterparty returns the participant who is allowed to respond to the
// current proposal, or "" if actor is not a participant.
func (o Offer) Counterparty(actorID string) string {
	switch actorID {
	case o.BuyerID:
		return o.SellerID
	case o.SellerID:
		return o.BuyerID
	}
	return ""
}
