package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade statuses. Completed, rejected, expired and cancelled are terminal;
// disputed leaves only via resolution.
const (
	TradeProposed            = "proposed"
	TradeCountered           = "countered"
	TradePaymentPending      = "payment_pending"
	TradeShippingPending     = "shipping_pending"
	TradeConfirmationPending = "confirmation_pending"
	TradeCompleted           = "completed"
	TradeRejected            = "rejected"
	TradeExpired             = "expired"
	TradeCancelled           = "cancelled"
	TradeDisputed            = "disputed"
)

// Trade sides.
const (
	SideInitiator = "initiator"
	SideReceiver  = "receiver"
)

// Shipment statuses.
const (
	ShipmentNotShipped = "not_shipped"
	ShipmentShipped    = "shipped"
	ShipmentDelivered  = "delivered"
	ShipmentConfirmed  = "confirmed"
)

// Cash payment statuses.
const (
	PaymentPending  = "pending"
	PaymentHeld     = "held"
	PaymentReleased = "released"
	PaymentRefunded = "refunded"
)

// Trade is a multi-item barter negotiation between two parties, optionally
// balanced by a cash differential on one side. Commission on the cash leg is
// frozen at proposal time.
type Trade struct {
	TradeID     string `json:"trade_id"`
	TradeNumber string `json:"trade_number"`
	InitiatorID string `json:"initiator_id"`
	ReceiverID  string `json:"receiver_id"`
	Status      string `json:"status"`
	ProposedBy  string `json:"proposed_by"`

	Items []TradeItem `json:"items"`

	CashAmount     decimal.Decimal `json:"cash_amount"`
	CashPayerID    string          `json:"cash_payer_id,omitempty"`
	CashCommission decimal.Decimal `json:"cash_commission"`

	ResponseDeadline     *time.Time `json:"response_deadline,omitempty"`
	PaymentDeadline      *time.Time `json:"payment_deadline,omitempty"`
	ShippingDeadline     *time.Time `json:"shipping_deadline,omitempty"`
	ConfirmationDeadline *time.Time `json:"confirmation_deadline,omitempty"`

	InitiatorMessage string `json:"initiator_message,omitempty"`
	ReceiverMessage  string `json:"receiver_message,omitempty"`
	CancelReason     string `json:"cancel_reason,omitempty"`

	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int64      `json:"version"`
}

// TradeItem binds a product to one side of a trade, with the listing value
// frozen at proposal time.
type TradeItem struct {
	ItemID    string          `json:"item_id"`
	TradeID   string          `json:"trade_id"`
	ProductID string          `json:"product_id"`
	Side      string          `json:"side"`
	Quantity  int             `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
}

// TradeShipment tracks one side's parcel once a trade is accepted. Exactly one
// exists per side.
type TradeShipment struct {
	ShipmentID     string     `json:"shipment_id"`
	TradeID        string     `json:"trade_id"`
	ShipperID      string     `json:"shipper_id"`
	Carrier        string     `json:"carrier,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	Status         string     `json:"status"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	Version        int64      `json:"version"`
}

// TradeCashPayment is the cash leg of a trade. TotalAmount is what the payer
// is charged: amount plus the frozen commission.
type TradeCashPayment struct {
	PaymentID   string          `json:"payment_id"`
	TradeID     string          `json:"trade_id"`
	PayerID     string          `json:"payer_id"`
	RecipientID string          `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
	Commission  decimal.Decimal `json:"commission"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	HoldID      string          `json:"hold_id,omitempty"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Version     int64           `json:"version"`
}

// TradeDispute records a conflict on a trade. RaisedByID is empty when the
// engine itself raised the dispute on a missed deadline.
type TradeDispute struct {
	DisputeID   string     `json:"dispute_id"`
	TradeID     string     `json:"trade_id"`
	RaisedByID  string     `json:"raised_by_id,omitempty"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// Terminal reports whether no further transition is possible.
func (t Trade) Terminal() bool {
	switch t.Status {
	case TradeCompleted, TradeRejected, TradeExpired, TradeCancelled:
		return true
	}
	return false
}

// Negotiating reports whether the trade is still in the proposal phase.
func (t Trade) Negotiating() bool {
	return t.Status == TradeProposed || t.Status == TradeCountered
}

// Participant reports whether userID is one of the two parties.
func (t Trade) Participant(userID string) bool {
	return userID == t.InitiatorID || userID == t.ReceiverID
}

// Counterparty returns the other participant, or "" if actor is not a party.
func (t Trade) Counterparty(actorID string) string {
	switch actorID {
	case t.InitiatorID:
		return t.ReceiverID
	case t.ReceiverID:
		return t.InitiatorID
	}
	return ""
}

// SideOf returns the side a participant's items belong to.
func (t Trade) SideOf(userID string) string {
	if userID == t.InitiatorID {
		return SideInitiator
	}
	if userID == t.ReceiverID {
		return SideReceiver
	}
	return ""
}

// ItemsOn returns the trade items belonging to one side.
func (t Trade) ItemsOn(side string) []TradeItem {
	var out []TradeItem
	for _, it := range t.Items {
		if it.Side == side {
			out = append(out, it)
		}
	}
	return out
}

// ProductIDs returns every product referenced by the trade, both sides.
func (t Trade) ProductIDs() []string {
	ids := make([]string, 0, len(t.Items))
	for _, it := range t.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
