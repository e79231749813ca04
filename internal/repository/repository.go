package repository

import (
	"time"

	model "swapmarket/internal/models"
)

// TradeAttachments carries the side rows that must commit in the same atomic
// unit as a trade transition: shipment placeholders created on acceptance, the
// cash-payment row moving through held/released/refunded, and dispute records.
type TradeAttachments struct {
	InsertShipments []model.TradeShipment
	UpsertPayment   *model.TradeCashPayment
	UpsertDispute   *model.TradeDispute
}

// MarketDB defines the negotiation storage interface. Every mutable entity
// carries a version counter; Update* methods are compare-and-swap on it and
// fail with marketerrors.ErrConcurrentModification when the stored version
// differs, so two concurrent transitions never both succeed from the same
// prior state. Item locks are checked-and-set inside InsertTrade/UpdateTrade
// so two simultaneous proposals can never lock the same product.
type MarketDB interface {
	InsertOffer(offer model.Offer) error
	GetOffer(offerID string) (model.Offer, error)
	UpdateOffer(offer model.Offer) error
	ListOffersByUser(userID string, limit, offset int) ([]model.Offer, error)
	DueOffers(now time.Time) ([]model.Offer, error)

	InsertTrade(trade model.Trade) error
	GetTrade(tradeID string) (model.Trade, error)
	UpdateTrade(trade model.Trade, attach TradeAttachments) error
	ListTradesByUser(userID string, limit, offset int) ([]model.Trade, error)
	DueTrades(now time.Time) ([]model.Trade, error)

	ShipmentsByTrade(tradeID string) ([]model.TradeShipment, error)
	// UpdateShipment commits one shipment under the version guard and returns
	// the trade's full shipment set as of that same critical section. The
	// returned snapshot is what callers must use to decide whether both legs
	// are done: a snapshot read separately from the write can miss a
	// concurrent counterpart update.
	UpdateShipment(shipment model.TradeShipment) ([]model.TradeShipment, error)
	PaymentByTrade(tradeID string) (model.TradeCashPayment, error)
	DisputeByTrade(tradeID string) (model.TradeDispute, error)

	IsItemLocked(productID string) (bool, error)
}

// PhaseDeadline returns the deadline governing a trade's current phase, or nil
// when the phase has none (terminal and disputed trades are never due).
func PhaseDeadline(t model.Trade) *time.Time {
	switch t.Status {
	case model.TradeProposed, model.TradeCountered:
		return t.ResponseDeadline
	case model.TradePaymentPending:
		return t.PaymentDeadline
	case model.TradeShippingPending:
		return t.ShippingDeadline
	case model.TradeConfirmationPending:
		return t.ConfirmationDeadline
	}
	return nil
}
