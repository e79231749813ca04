package helpers

import "github.com/shopspring/decimal"

// Request/Response DTOs

type CreateOfferRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	BuyerID   string          `json:"buyer_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type CounterOfferRequest struct {
	ActorID string          `json:"actor_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

type OfferActionRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

type OfferResponse struct {
	OfferID    string `json:"offer_id"`
	ProductID  string `json:"product_id"`
	BuyerID    string `json:"buyer_id"`
	SellerID   string `json:"seller_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	ProposedBy string `json:"proposed_by"`
	ExpiresAt  string `json:"expires_at"`
	CreatedAt  string `json:"created_at"`
}

type TradeItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type ProposeTradeRequest struct {
	InitiatorID    string             `json:"initiator_id" binding:"required"`
	ReceiverID     string             `json:"receiver_id" binding:"required"`
	InitiatorItems []TradeItemRequest `json:"initiator_items"`
	ReceiverItems  []TradeItemRequest `json:"receiver_items"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	CashPayerID    string             `json:"cash_payer_id"`
	Message        string             `json:"message"`
}

type CounterTradeRequest struct {
	InitiatorItems []TradeItemRequest `json:"initiator_items"`
	ReceiverItems  []TradeItemRequest `json:"receiver_items"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	CashPayerID    string             `json:"cash_payer_id"`
}

type RespondTradeRequest struct {
	ActorID string               `json:"actor_id" binding:"required"`
	Action  string               `json:"action" binding:"required,oneof=accept reject counter"`
	Message string               `json:"message"`
	Counter *CounterTradeRequest `json:"counter"`
}

type RecordPaymentRequest struct {
	PayerID string `json:"payer_id" binding:"required"`
}

type MarkShippedRequest struct {
	ShipperID      string `json:"shipper_id" binding:"required"`
	Carrier        string `json:"carrier" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type ConfirmReceiptRequest struct {
	ConfirmerID string `json:"confirmer_id" binding:"required"`
}

type RaiseDisputeRequest struct {
	RaisedByID  string `json:"raised_by_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
	Outcome    string `json:"outcome" binding:"required,oneof=complete cancel"`
}

type CancelTradeRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}
