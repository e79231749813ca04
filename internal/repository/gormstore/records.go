package gormstore

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "swapmarket/internal/models"
)

// Database rows. Amounts persist through shopspring decimal's Valuer/Scanner,
// never as floats.

type offerRecord struct {
	gorm.Model
	OfferID    string          `gorm:"uniqueIndex"`
	ProductID  string          `gorm:"index:idx_offer_product_buyer"`
	BuyerID    string          `gorm:"index:idx_offer_product_buyer"`
	SellerID   string          `gorm:"index"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2)"`
	Status     string          `gorm:"index"`
	ProposedBy string
	ExpiresAt  time.Time `gorm:"index"`
	OfferedAt  time.Time
	ChangedAt  time.Time
	Version    int64 `gorm:"not null"`
}

type tradeRecord struct {
	gorm.Model
	TradeID     string `gorm:"uniqueIndex"`
	TradeNumber string `gorm:"uniqueIndex"`
	InitiatorID string `gorm:"index"`
	ReceiverID  string `gorm:"index"`
	Status      string `gorm:"index"`
	ProposedBy  string

	CashAmount     decimal.Decimal `gorm:"type:decimal(20,2)"`
	CashPayerID    string
	CashCommission decimal.Decimal `gorm:"type:decimal(20,2)"`

	ResponseDeadline     *time.Time
	PaymentDeadline      *time.Time
	ShippingDeadline     *time.Time
	ConfirmationDeadline *time.Time

	InitiatorMessage string
	ReceiverMessage  string
	CancelReason     string

	AcceptedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	ProposedAt  time.Time
	ChangedAt   time.Time
	Version     int64 `gorm:"not null"`
}

type tradeItemRecord struct {
	gorm.Model
	ItemID    string `gorm:"uniqueIndex"`
	TradeID   string `gorm:"index"`
	ProductID string `gorm:"index"`
	Side      string
	Quantity  int
	Value     decimal.Decimal `gorm:"type:decimal(20,2)"`
}

type shipmentRecord struct {
	gorm.Model
	ShipmentID     string `gorm:"uniqueIndex"`
	TradeID        string `gorm:"index"`
	ShipperID      string
	Carrier        string
	TrackingNumber string
	Status         string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	ConfirmedAt    *time.Time
	Version        int64 `gorm:"not null"`
}

type paymentRecord struct {
	gorm.Model
	PaymentID   string `gorm:"uniqueIndex"`
	TradeID     string `gorm:"uniqueIndex"`
	PayerID     string
	RecipientID string
	Amount      decimal.Decimal `gorm:"type:decimal(20,2)"`
	Commission  decimal.Decimal `gorm:"type:decimal(20,2)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,2)"`
	HoldID      string
	Status      string
	PaidAt      *time.Time
	Version     int64 `gorm:"not null"`
}

type disputeRecord struct {
	gorm.Model
	DisputeID   string `gorm:"uniqueIndex"`
	TradeID     string `gorm:"uniqueIndex"`
	RaisedByID  string
	Reason      string
	Description string
	Resolution  string
	OpenedAt    time.Time
	ResolvedAt  *time.Time
}

type itemLockRecord struct {
	gorm.Model
	ProductID string `gorm:"uniqueIndex"`
	TradeID   string `gorm:"index"`
}

func offerToRecord(o model.Offer) offerRecord {
	return offerRecord{
		OfferID:    o.OfferID,
		ProductID:  o.ProductID,
		BuyerID:    o.BuyerID,
		SellerID:   o.SellerID,
		Amount:     o.Amount,
		Status:     o.Status,
		ProposedBy: o.ProposedBy,
		ExpiresAt:  o.ExpiresAt,
		OfferedAt:  o.CreatedAt,
		ChangedAt:  o.UpdatedAt,
		Version:    o.Version,
	}
}

func (r offerRecord) toModel() model.Offer {
	return model.Offer{
		OfferID:    r.OfferID,
		ProductID:  r.ProductID,
		BuyerID:    r.BuyerID,
		SellerID:   r.SellerID,
		Amount:     r.Amount,
		Status:     r.Status,
		ProposedBy: r.ProposedBy,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.OfferedAt,
		UpdatedAt:  r.ChangedAt,
		Version:    r.Version,
	}
}

func tradeToRecord(t model.Trade) tradeRecord {
	return tradeRecord{
		TradeID:              t.TradeID,
		TradeNumber:          t.TradeNumber,
		InitiatorID:          t.InitiatorID,
		ReceiverID:           t.ReceiverID,
		Status:               t.Status,
		ProposedBy:           t.ProposedBy,
		CashAmount:           t.CashAmount,
		CashPayerID:          t.CashPayerID,
		CashCommission:       t.CashCommission,
		ResponseDeadline:     t.ResponseDeadline,
		PaymentDeadline:      t.PaymentDeadline,
		ShippingDeadline:     t.ShippingDeadline,
		ConfirmationDeadline: t.ConfirmationDeadline,
		InitiatorMessage:     t.InitiatorMessage,
		ReceiverMessage:      t.ReceiverMessage,
		CancelReason:         t.CancelReason,
		AcceptedAt:           t.AcceptedAt,
		CompletedAt:          t.CompletedAt,
		CancelledAt:          t.CancelledAt,
		ProposedAt:           t.CreatedAt,
		ChangedAt:            t.UpdatedAt,
		Version:              t.Version,
	}
}

func (r tradeRecord) toModel() model.Trade {
	return model.Trade{
		TradeID:              r.TradeID,
		TradeNumber:          r.TradeNumber,
		InitiatorID:          r.InitiatorID,
		ReceiverID:           r.ReceiverID,
		Status:               r.Status,
		ProposedBy:           r.ProposedBy,
		CashAmount:           r.CashAmount,
		CashPayerID:          r.CashPayerID,
		CashCommission:       r.CashCommission,
		ResponseDeadline:     r.ResponseDeadline,
		PaymentDeadline:      r.PaymentDeadline,
		ShippingDeadline:     r.ShippingDeadline,
		ConfirmationDeadline: r.ConfirmationDeadline,
		InitiatorMessage:     r.InitiatorMessage,
		ReceiverMessage:      r.ReceiverMessage,
		CancelReason:         r.CancelReason,
		AcceptedAt:           r.AcceptedAt,
		CompletedAt:          r.CompletedAt,
		CancelledAt:          r.CancelledAt,
		CreatedAt:            r.ProposedAt,
		UpdatedAt:            r.ChangedAt,
		Version:              r.Version,
	}
}

func itemToRecord(it model.TradeItem) tradeItemRecord {
	return tradeItemRecord{
		ItemID:    it.ItemID,
		TradeID:   it.TradeID,
		ProductID: it.ProductID,
		Side:      it.Side,
		Quantity:  it.Quantity,
		Value:     it.Value,
	}
}

func (r tradeItemRecord) toModel() model.TradeItem {
	return model.TradeItem{
		ItemID:    r.ItemID,
		TradeID:   r.TradeID,
		ProductID: r.ProductID,
		Side:      r.Side,
		Quantity:  r.Quantity,
		Value:     r.Value,
	}
}

func shipmentToRecord(sh model.TradeShipment) shipmentRecord {
	return shipmentRecord{
		ShipmentID:     sh.ShipmentID,
		TradeID:        sh.TradeID,
		ShipperID:      sh.ShipperID,
		Carrier:        sh.Carrier,
		TrackingNumber: sh.TrackingNumber,
		Status:         sh.Status,
		ShippedAt:      sh.ShippedAt,
		DeliveredAt:    sh.DeliveredAt,
		ConfirmedAt:    sh.ConfirmedAt,
		Version:        sh.Version,
	}
}

func (r shipmentRecord) toModel() model.TradeShipment {
	return model.TradeShipment{
		ShipmentID:     r.ShipmentID,
		TradeID:        r.TradeID,
		ShipperID:      r.ShipperID,
		Carrier:        r.Carrier,
		TrackingNumber: r.TrackingNumber,
		Status:         r.Status,
		ShippedAt:      r.ShippedAt,
		DeliveredAt:    r.DeliveredAt,
		ConfirmedAt:    r.ConfirmedAt,
		Version:        r.Version,
	}
}

func paymentToRecord(p model.TradeCashPayment) paymentRecord {
	return paymentRecord{
		PaymentID:   p.PaymentID,
		TradeID:     p.TradeID,
		PayerID:     p.PayerID,
		RecipientID: p.RecipientID,
		Amount:      p.Amount,
		Commission:  p.Commission,
		TotalAmount: p.TotalAmount,
		HoldID:      p.HoldID,
		Status:      p.Status,
		PaidAt:      p.PaidAt,
		Version:     p.Version,
	}
}

func (r paymentRecord) toModel() model.TradeCashPayment {
	return model.TradeCashPayment{
		PaymentID:   r.PaymentID,
		TradeID:     r.TradeID,
		PayerID:     r.PayerID,
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
		Commission:  r.Commission,
		TotalAmount: r.TotalAmount,
		HoldID:      r.HoldID,
		Status:      r.Status,
		PaidAt:      r.PaidAt,
		Version:     r.Version,
	}
}

func disputeToRecord(d model.TradeDispute) disputeRecord {
	return disputeRecord{
		DisputeID:   d.DisputeID,
		TradeID:     d.TradeID,
		RaisedByID:  d.RaisedByID,
		Reason:      d.Reason,
		Description: d.Description,
		Resolution:  d.Resolution,
		OpenedAt:    d.CreatedAt,
		ResolvedAt:  d.ResolvedAt,
	}
}

func (r disputeRecord) toModel() model.TradeDispute {
	return model.TradeDispute{
		DisputeID:   r.DisputeID,
		TradeID:     r.TradeID,
		RaisedByID:  r.RaisedByID,
		Reason:      r.Reason,
		Description: r.Description,
		Resolution:  r.Resolution,
		CreatedAt:   r.OpenedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}
