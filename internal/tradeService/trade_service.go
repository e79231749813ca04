package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"swapmarket/internal/commission"
	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	"swapmarket/internal/marketerrors"
	"swapmarket/internal/models"
	"swapmarket/internal/repository"
	"swapmarket/utils"
)

// Respond actions
const (
	ActionAccept  = "accept"
	ActionReject  = "reject"
	ActionCounter = "counter"
)

// Dispute resolution outcomes
const (
	OutcomeComplete = "complete"
	OutcomeCancel   = "cancel"
)

// ItemInput names one product a party puts on the table.
type ItemInput struct {
	ProductID string
	Quantity  int
}

// ProposeInput is the full initial proposal of a barter trade.
type ProposeInput struct {
	InitiatorID    string
	ReceiverID     string
	InitiatorItems []ItemInput
	ReceiverItems  []ItemInput
	CashAmount     decimal.Decimal
	CashPayerID    string
	Message        string
}

// CounterInput is the replacement item/cash set of a counter-proposal.
type CounterInput struct {
	InitiatorItems []ItemInput
	ReceiverItems  []ItemInput
	CashAmount     decimal.Decimal
	CashPayerID    string
}

// Detail aggregates a trade with its fulfillment rows for queries.
type Detail struct {
	Trade     models.Trade             `json:"trade"`
	Shipments []models.TradeShipment   `json:"shipments,omitempty"`
	Payment   *models.TradeCashPayment `json:"payment,omitempty"`
	Dispute   *models.TradeDispute     `json:"dispute,omitempty"`
}

// TradeService defines the business logic for multi-item barter negotiation:
// proposal and counter-proposal, the optional cash leg with its frozen
// commission, dual shipments, receipt confirmation, disputes and deadlines.
type TradeService struct {
	repo           repository.MarketDB
	catalog        gateway.Catalog
	payment        gateway.Payment
	notifier       gateway.Notifier
	rate           decimal.Decimal
	responseWindow time.Duration
	paymentWindow  time.Duration
	shippingWindow time.Duration
	confirmWindow  time.Duration
	pageSize       int
}

// NewTradeService creates a new TradeService instance
func NewTradeService(repo repository.MarketDB, catalog gateway.Catalog, payment gateway.Payment, notifier gateway.Notifier, cfg *config.Negotiation) *TradeService {
	return &TradeService{
		repo:           repo,
		catalog:        catalog,
		payment:        payment,
		notifier:       notifier,
		rate:           decimal.NewFromFloat(cfg.CommissionRate),
		responseWindow: cfg.ResponseWindow,
		paymentWindow:  cfg.PaymentWindow,
		shippingWindow: cfg.ShippingWindow,
		confirmWindow:  cfg.ConfirmWindow,
		pageSize:       cfg.DefaultPageSize,
	}
}

// ProposeTrade validates and records a barter proposal, freezing each item's
// listing value and the commission on the cash leg, and locking every
// referenced product for the life of the negotiation.
func (s *TradeService) ProposeTrade(ctx context.Context, in ProposeInput) (models.Trade, error) {
	if in.InitiatorID == "" || in.ReceiverID == "" {
		return models.Trade{}, fmt.Errorf("service: %w - missing initiatorID or receiverID", marketerrors.ErrValidation)
	}
	if in.InitiatorID == in.ReceiverID {
		return models.Trade{}, fmt.Errorf("service: %w - cannot trade with yourself", marketerrors.ErrValidation)
	}

	now := time.Now().UTC()
	tradeID := utils.GenerateID()

	items, cashAmount, fee, err := s.buildProposal(ctx, tradeID, in.InitiatorID, in.ReceiverID,
		in.InitiatorItems, in.ReceiverItems, in.CashAmount, in.CashPayerID)
	if err != nil {
		return models.Trade{}, err
	}

	deadline := now.Add(s.responseWindow)
	trade := models.Trade{
		TradeID:          tradeID,
		TradeNumber:      tradeNumber(now),
		InitiatorID:      in.InitiatorID,
		ReceiverID:       in.ReceiverID,
		Status:           models.TradeProposed,
		ProposedBy:       in.InitiatorID,
		Items:            items,
		CashAmount:       cashAmount,
		CashPayerID:      in.CashPayerID,
		CashCommission:   fee,
		ResponseDeadline: &deadline,
		InitiatorMessage: in.Message,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.InsertTrade(trade); err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to record trade proposal by %s: %w", in.InitiatorID, err)
	}

	s.notifier.Notify(trade.ReceiverID, "trade.proposed", map[string]any{
		"trade_id":     trade.TradeID,
		"trade_number": trade.TradeNumber,
	})
	return trade, nil
}

// RespondToTrade lets the receiver of the live proposal accept, reject or
// counter it. Accepting a trade with a cash leg moves it to payment_pending;
// without one it goes straight to shipping_pending with both shipment
// placeholders created in the same write.
func (s *TradeService) RespondToTrade(ctx context.Context, tradeID, actorID, action, message string, counter *CounterInput) (models.Trade, error) {
	trade, err := s.turn(tradeID, actorID)
	if err != nil {
		return models.Trade{}, err
	}

	now := time.Now().UTC()
	if trade.SideOf(actorID) == models.SideReceiver {
		trade.ReceiverMessage = message
	} else if message != "" {
		trade.InitiatorMessage = message
	}
	trade.UpdatedAt = now

	switch action {
	case ActionReject:
		trade.Status = models.TradeRejected
		if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{}); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to reject trade %s: %w", tradeID, err)
		}
		s.notifier.Notify(trade.Counterparty(actorID), "trade.rejected", map[string]any{"trade_id": tradeID})
		return trade, nil

	case ActionCounter:
		if counter == nil {
			return models.Trade{}, fmt.Errorf("service: %w - counter action requires a replacement proposal", marketerrors.ErrValidation)
		}
		items, cashAmount, fee, err := s.buildProposal(ctx, tradeID, trade.InitiatorID, trade.ReceiverID,
			counter.InitiatorItems, counter.ReceiverItems, counter.CashAmount, counter.CashPayerID)
		if err != nil {
			return models.Trade{}, err
		}

		deadline := now.Add(s.responseWindow)
		trade.Status = models.TradeCountered
		trade.ProposedBy = actorID
		trade.Items = items
		trade.CashAmount = cashAmount
		trade.CashPayerID = counter.CashPayerID
		trade.CashCommission = fee
		trade.ResponseDeadline = &deadline

		if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{}); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to counter trade %s: %w", tradeID, err)
		}
		s.notifier.Notify(trade.Counterparty(actorID), "trade.countered", map[string]any{"trade_id": tradeID})
		return trade, nil

	case ActionAccept:
		trade.AcceptedAt = &now
		var attach repository.TradeAttachments

		if trade.CashAmount.Sign() > 0 {
			trade.Status = models.TradePaymentPending
			paymentDeadline := now.Add(s.paymentWindow)
			trade.PaymentDeadline = &paymentDeadline
		} else {
			trade.Status = models.TradeShippingPending
			shippingDeadline := now.Add(s.shippingWindow)
			trade.ShippingDeadline = &shippingDeadline
			attach.InsertShipments = shipmentPlaceholders(trade)
		}

		if err := s.repo.UpdateTrade(trade, attach); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to accept trade %s: %w", tradeID, err)
		}
		s.notifier.Notify(trade.Counterparty(actorID), "trade.accepted", map[string]any{
			"trade_id": tradeID,
			"status":   trade.Status,
		})
		return trade, nil
	}

	return models.Trade{}, fmt.Errorf("service: %w - unknown action %q", marketerrors.ErrValidation, action)
}

// RecordCashPayment captures the cash leg through the escrow gateway and, on
// success, moves the trade to shipping_pending with the held payment row and
// both shipment placeholders committed as one unit. A gateway failure leaves
// the trade in payment_pending for retry.
func (s *TradeService) RecordCashPayment(ctx context.Context, tradeID, payerID string) (models.Trade, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if trade.Status != models.TradePaymentPending {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is %s", marketerrors.ErrWrongPhase, tradeID, trade.Status)
	}
	if payerID != trade.CashPayerID {
		return models.Trade{}, fmt.Errorf("service: %w - %s is not the cash payer", marketerrors.ErrNotAuthorized, payerID)
	}

	total := commission.Total(trade.CashAmount, trade.CashCommission)
	holdID, err := s.payment.HoldFunds(ctx, payerID, total)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: hold for trade %s failed: %w", tradeID, err)
	}
	if err := s.payment.CaptureFunds(ctx, holdID); err != nil {
		return models.Trade{}, fmt.Errorf("service: capture for trade %s failed: %w", tradeID, err)
	}

	now := time.Now().UTC()
	payment := models.TradeCashPayment{
		PaymentID:   utils.GenerateID(),
		TradeID:     tradeID,
		PayerID:     payerID,
		RecipientID: trade.Counterparty(payerID),
		Amount:      trade.CashAmount,
		Commission:  trade.CashCommission,
		TotalAmount: total,
		HoldID:      holdID,
		Status:      models.PaymentHeld,
		PaidAt:      &now,
	}

	shippingDeadline := now.Add(s.shippingWindow)
	trade.Status = models.TradeShippingPending
	trade.ShippingDeadline = &shippingDeadline
	trade.UpdatedAt = now

	err = s.repo.UpdateTrade(trade, repository.TradeAttachments{
		InsertShipments: shipmentPlaceholders(trade),
		UpsertPayment:   &payment,
	})
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to record payment on trade %s: %w", tradeID, err)
	}

	s.notifier.Notify(payment.RecipientID, "trade.cash_received", map[string]any{
		"trade_id": tradeID,
		"amount":   payment.Amount.StringFixed(2),
	})
	return trade, nil
}

// MarkShipped records that one side handed its parcel to a carrier. When both
// sides have shipped, the trade advances to confirmation_pending.
func (s *TradeService) MarkShipped(ctx context.Context, tradeID, shipperID, carrier, trackingNumber string) (models.Trade, error) {
	if carrier == "" {
		return models.Trade{}, fmt.Errorf("service: %w - carrier is required", marketerrors.ErrValidation)
	}

	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if trade.Status != models.TradeShippingPending {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is %s", marketerrors.ErrWrongPhase, tradeID, trade.Status)
	}
	if !trade.Participant(shipperID) {
		return models.Trade{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}

	shipments, err := s.repo.ShipmentsByTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}

	// The post-write snapshot returned by UpdateShipment decides the advance:
	// under two concurrent shippers exactly one of them sees both legs done.
	now := time.Now().UTC()
	var fresh []models.TradeShipment
	for _, sh := range shipments {
		if sh.ShipperID != shipperID {
			continue
		}
		if sh.Status != models.ShipmentNotShipped {
			if !allShipped(shipments) {
				return models.Trade{}, fmt.Errorf("service: %w - shipment already %s", marketerrors.ErrInvalidState, sh.Status)
			}
			// Both legs committed by earlier attempts but the trade never
			// advanced; retry the advance.
			fresh = shipments
			continue
		}
		sh.Status = models.ShipmentShipped
		sh.Carrier = carrier
		sh.TrackingNumber = trackingNumber
		sh.ShippedAt = &now
		if fresh, err = s.repo.UpdateShipment(sh); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to mark shipment on trade %s: %w", tradeID, err)
		}
	}

	if allShipped(fresh) {
		confirmDeadline := now.Add(s.confirmWindow)
		trade.Status = models.TradeConfirmationPending
		trade.ConfirmationDeadline = &confirmDeadline
		trade.UpdatedAt = now
		if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{}); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to advance trade %s: %w", tradeID, err)
		}
	}

	s.notifier.Notify(trade.Counterparty(shipperID), "trade.shipped", map[string]any{
		"trade_id": tradeID,
		"carrier":  carrier,
	})
	return trade, nil
}

// ConfirmReceipt records that a party received the counterparty's parcel.
// When both sides have confirmed, the trade completes: a held cash leg is
// released to its recipient first, and the completion commits only after the
// release succeeded.
func (s *TradeService) ConfirmReceipt(ctx context.Context, tradeID, confirmerID string) (models.Trade, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if trade.Status != models.TradeConfirmationPending {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is %s", marketerrors.ErrWrongPhase, tradeID, trade.Status)
	}
	if !trade.Participant(confirmerID) {
		return models.Trade{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}

	shipments, err := s.repo.ShipmentsByTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}

	// The confirmer vouches for the parcel the counterparty sent. The
	// completion decision comes from the post-write snapshot, so two
	// concurrent confirmers cannot both miss the other's confirmation.
	counterparty := trade.Counterparty(confirmerID)
	now := time.Now().UTC()
	var fresh []models.TradeShipment
	for _, sh := range shipments {
		if sh.ShipperID != counterparty {
			continue
		}
		if sh.Status == models.ShipmentConfirmed {
			if !allConfirmed(shipments) {
				return models.Trade{}, fmt.Errorf("service: %w - receipt already confirmed", marketerrors.ErrInvalidState)
			}
			// Both legs committed by earlier attempts but the trade never
			// completed; retry the completion.
			fresh = shipments
			continue
		}
		sh.Status = models.ShipmentConfirmed
		if sh.DeliveredAt == nil {
			sh.DeliveredAt = &now
		}
		sh.ConfirmedAt = &now
		if fresh, err = s.repo.UpdateShipment(sh); err != nil {
			return models.Trade{}, fmt.Errorf("service: failed to confirm receipt on trade %s: %w", tradeID, err)
		}
	}

	if !allConfirmed(fresh) {
		s.notifier.Notify(counterparty, "trade.receipt_confirmed", map[string]any{"trade_id": tradeID})
		return trade, nil
	}

	attach, err := s.releaseCash(ctx, trade)
	if err != nil {
		return models.Trade{}, err
	}

	trade.Status = models.TradeCompleted
	trade.CompletedAt = &now
	trade.UpdatedAt = now
	if err := s.repo.UpdateTrade(trade, attach); err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to complete trade %s: %w", tradeID, err)
	}

	s.notifier.Notify(trade.InitiatorID, "trade.completed", map[string]any{"trade_id": tradeID})
	s.notifier.Notify(trade.ReceiverID, "trade.completed", map[string]any{"trade_id": tradeID})
	return trade, nil
}

func allShipped(shipments []models.TradeShipment) bool {
	for _, sh := range shipments {
		if sh.Status == models.ShipmentNotShipped {
			return false
		}
	}
	return len(shipments) > 0
}

func allConfirmed(shipments []models.TradeShipment) bool {
	for _, sh := range shipments {
		if sh.Status != models.ShipmentConfirmed {
			return false
		}
	}
	return len(shipments) > 0
}

// RaiseDispute freezes a post-acceptance trade pending arbitration. Deadlines
// stop counting because the scheduler never touches disputed trades.
func (s *TradeService) RaiseDispute(ctx context.Context, tradeID, raisedByID, reason, description string) (models.Trade, error) {
	if reason == "" {
		return models.Trade{}, fmt.Errorf("service: %w - dispute reason is required", marketerrors.ErrValidation)
	}

	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	switch trade.Status {
	case models.TradePaymentPending, models.TradeShippingPending, models.TradeConfirmationPending:
	default:
		return models.Trade{}, fmt.Errorf("service: %w - cannot dispute a trade in %s", marketerrors.ErrInvalidState, trade.Status)
	}
	if !trade.Participant(raisedByID) {
		return models.Trade{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}

	now := time.Now().UTC()
	dispute := models.TradeDispute{
		DisputeID:   utils.GenerateID(),
		TradeID:     tradeID,
		RaisedByID:  raisedByID,
		Reason:      reason,
		Description: description,
		CreatedAt:   now,
	}

	trade.Status = models.TradeDisputed
	trade.UpdatedAt = now
	if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{UpsertDispute: &dispute}); err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to raise dispute on trade %s: %w", tradeID, err)
	}

	s.notifier.Notify(trade.Counterparty(raisedByID), "trade.disputed", map[string]any{
		"trade_id": tradeID,
		"reason":   reason,
	})
	return trade, nil
}

// ResolveDispute applies an arbitration outcome to a disputed trade:
// complete releases any held cash to its recipient, cancel refunds it to the
// payer. Either way the resolution text and timestamp land on the dispute.
func (s *TradeService) ResolveDispute(ctx context.Context, tradeID, resolution, outcome string) (models.Trade, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if trade.Status != models.TradeDisputed {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is not disputed", marketerrors.ErrInvalidState, tradeID)
	}

	dispute, err := s.repo.DisputeByTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}

	now := time.Now().UTC()
	dispute.Resolution = resolution
	dispute.ResolvedAt = &now

	var attach repository.TradeAttachments
	switch outcome {
	case OutcomeComplete:
		attach, err = s.releaseCash(ctx, trade)
		if err != nil {
			return models.Trade{}, err
		}
		trade.Status = models.TradeCompleted
		trade.CompletedAt = &now

	case OutcomeCancel:
		attach, err = s.refundCash(ctx, trade)
		if err != nil {
			return models.Trade{}, err
		}
		trade.Status = models.TradeCancelled
		trade.CancelReason = "dispute resolved: " + resolution
		trade.CancelledAt = &now

	default:
		return models.Trade{}, fmt.Errorf("service: %w - unknown outcome %q", marketerrors.ErrValidation, outcome)
	}

	attach.UpsertDispute = &dispute
	trade.UpdatedAt = now
	if err := s.repo.UpdateTrade(trade, attach); err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to resolve dispute on trade %s: %w", tradeID, err)
	}

	s.notifier.Notify(trade.InitiatorID, "trade.dispute_resolved", map[string]any{"trade_id": tradeID, "outcome": outcome})
	s.notifier.Notify(trade.ReceiverID, "trade.dispute_resolved", map[string]any{"trade_id": tradeID, "outcome": outcome})
	return trade, nil
}

// CancelTrade withdraws a trade that is still in the proposal phase and
// releases every item lock. Nothing has moved yet, so no refunds are needed.
func (s *TradeService) CancelTrade(ctx context.Context, tradeID, actorID, reason string) (models.Trade, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if !trade.Negotiating() {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is %s", marketerrors.ErrInvalidState, tradeID, trade.Status)
	}
	if !trade.Participant(actorID) {
		return models.Trade{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}

	now := time.Now().UTC()
	trade.Status = models.TradeCancelled
	trade.CancelReason = reason
	trade.CancelledAt = &now
	trade.UpdatedAt = now

	if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{}); err != nil {
		return models.Trade{}, fmt.Errorf("service: failed to cancel trade %s: %w", tradeID, err)
	}

	s.notifier.Notify(trade.Counterparty(actorID), "trade.cancelled", map[string]any{
		"trade_id": tradeID,
		"reason":   reason,
	})
	return trade, nil
}

// GetTrade returns a trade with its fulfillment rows, visible only to its
// participants.
func (s *TradeService) GetTrade(tradeID, requesterID string) (Detail, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return Detail{}, fmt.Errorf("service: %w", err)
	}
	if !trade.Participant(requesterID) {
		return Detail{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}

	detail := Detail{Trade: trade}
	if shipments, err := s.repo.ShipmentsByTrade(tradeID); err == nil {
		detail.Shipments = shipments
	}
	if payment, err := s.repo.PaymentByTrade(tradeID); err == nil {
		detail.Payment = &payment
	}
	if dispute, err := s.repo.DisputeByTrade(tradeID); err == nil {
		detail.Dispute = &dispute
	}
	return detail, nil
}

// ListTradesByUser returns the user's trades, newest first, paginated.
func (s *TradeService) ListTradesByUser(userID string, limit, offset int) ([]models.Trade, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrValidation)
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	if offset < 0 {
		offset = 0
	}

	trades, err := s.repo.ListTradesByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list trades for user %s: %w", userID, err)
	}
	return trades, nil
}

// ExpireTrades advances every trade whose current-phase deadline has passed.
// A missed response deadline expires the negotiation; a missed payment
// deadline cancels it (nothing is held yet); a missed shipping or
// confirmation deadline raises an engine dispute, because cash or items may
// already have moved and silent cancellation would strand them.
// Scheduler-invoked and idempotent.
func (s *TradeService) ExpireTrades(now time.Time) (int, error) {
	due, err := s.repo.DueTrades(now)
	if err != nil {
		return 0, fmt.Errorf("service: failed to scan due trades: %w", err)
	}

	transitioned := 0
	for _, trade := range due {
		var attach repository.TradeAttachments
		trade.UpdatedAt = now

		switch trade.Status {
		case models.TradeProposed, models.TradeCountered:
			trade.Status = models.TradeExpired
			trade.CancelReason = "response deadline passed"

		case models.TradePaymentPending:
			trade.Status = models.TradeCancelled
			trade.CancelReason = "payment deadline passed"
			trade.CancelledAt = &now

		case models.TradeShippingPending, models.TradeConfirmationPending:
			attach.UpsertDispute = &models.TradeDispute{
				DisputeID: utils.GenerateID(),
				TradeID:   trade.TradeID,
				Reason:    "deadline exceeded",
				Description: fmt.Sprintf("trade did not progress out of %s before %s",
					trade.Status, now.Format(time.RFC3339)),
				CreatedAt: now,
			}
			trade.Status = models.TradeDisputed

		default:
			continue
		}

		if err := s.repo.UpdateTrade(trade, attach); err != nil {
			if errors.Is(err, marketerrors.ErrConcurrentModification) {
				continue // another worker already transitioned it
			}
			return transitioned, fmt.Errorf("service: failed to expire trade %s: %w", trade.TradeID, err)
		}
		transitioned++

		s.notifier.Notify(trade.InitiatorID, "trade.deadline_passed", map[string]any{"trade_id": trade.TradeID, "status": trade.Status})
		s.notifier.Notify(trade.ReceiverID, "trade.deadline_passed", map[string]any{"trade_id": trade.TradeID, "status": trade.Status})
	}
	return transitioned, nil
}

// buildProposal validates an item/cash set and freezes listing values and the
// commission. Each product must belong to its stated side and be purchasable.
func (s *TradeService) buildProposal(ctx context.Context, tradeID, initiatorID, receiverID string,
	initiatorItems, receiverItems []ItemInput, cashAmount decimal.Decimal, cashPayerID string) ([]models.TradeItem, decimal.Decimal, decimal.Decimal, error) {

	if len(initiatorItems)+len(receiverItems) == 0 {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - a trade needs at least one item", marketerrors.ErrValidation)
	}
	if cashAmount.Sign() < 0 {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - negative cash amount", marketerrors.ErrValidation)
	}
	if cashAmount.Sign() > 0 && cashPayerID != initiatorID && cashPayerID != receiverID {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - cash payer must be a participant", marketerrors.ErrValidation)
	}
	if cashAmount.Sign() == 0 && cashPayerID != "" {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - cash payer given without cash amount", marketerrors.ErrValidation)
	}

	var items []models.TradeItem
	sides := []struct {
		side   string
		userID string
		inputs []ItemInput
	}{
		{models.SideInitiator, initiatorID, initiatorItems},
		{models.SideReceiver, receiverID, receiverItems},
	}

	for _, sd := range sides {
		for _, in := range sd.inputs {
			if in.Quantity < 1 {
				return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - quantity must be at least 1", marketerrors.ErrValidation)
			}
			listing, err := s.catalog.GetListing(ctx, in.ProductID)
			if err != nil {
				if errors.Is(err, marketerrors.ErrProductNotFound) {
					return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: product %s: %w", in.ProductID, err)
				}
				return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: catalog lookup for %s failed: %v: %w", in.ProductID, err, marketerrors.ErrDependencyFailure)
			}
			if listing.OwnerID != sd.userID {
				return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - product %s is not owned by the %s side", marketerrors.ErrValidation, in.ProductID, sd.side)
			}
			if !listing.Purchasable() {
				return nil, decimal.Zero, decimal.Zero, fmt.Errorf("service: %w - product %s is not tradable", marketerrors.ErrValidation, in.ProductID)
			}

			items = append(items, models.TradeItem{
				ItemID:    utils.GenerateID(),
				TradeID:   tradeID,
				ProductID: in.ProductID,
				Side:      sd.side,
				Quantity:  in.Quantity,
				Value:     listing.Price, // frozen, later listing changes do not touch it
			})
		}
	}

	return items, cashAmount, commission.Calculate(cashAmount, s.rate), nil
}

// releaseCash pays a held cash leg out to its recipient. No-op when the trade
// has no held payment. A gateway failure, or any payment read error other
// than the missing row, aborts so the caller's transition never commits with
// funds still held.
func (s *TradeService) releaseCash(ctx context.Context, trade models.Trade) (repository.TradeAttachments, error) {
	payment, err := s.repo.PaymentByTrade(trade.TradeID)
	if err != nil {
		if errors.Is(err, marketerrors.ErrTradeNotFound) {
			return repository.TradeAttachments{}, nil // no cash leg
		}
		return repository.TradeAttachments{}, fmt.Errorf("service: payment lookup for trade %s failed: %w", trade.TradeID, err)
	}
	if payment.Status != models.PaymentHeld {
		return repository.TradeAttachments{}, nil
	}

	if err := s.payment.ReleaseFunds(ctx, payment.HoldID, payment.RecipientID); err != nil {
		return repository.TradeAttachments{}, fmt.Errorf("service: release for trade %s failed: %w", trade.TradeID, err)
	}
	payment.Status = models.PaymentReleased
	return repository.TradeAttachments{UpsertPayment: &payment}, nil
}

// refundCash returns a held cash leg to its payer. No-op when nothing is
// held; a payment read error other than the missing row aborts the caller's
// transition.
func (s *TradeService) refundCash(ctx context.Context, trade models.Trade) (repository.TradeAttachments, error) {
	payment, err := s.repo.PaymentByTrade(trade.TradeID)
	if err != nil {
		if errors.Is(err, marketerrors.ErrTradeNotFound) {
			return repository.TradeAttachments{}, nil // no cash leg
		}
		return repository.TradeAttachments{}, fmt.Errorf("service: payment lookup for trade %s failed: %w", trade.TradeID, err)
	}
	if payment.Status != models.PaymentHeld {
		return repository.TradeAttachments{}, nil
	}

	if err := s.payment.RefundFunds(ctx, payment.HoldID); err != nil {
		return repository.TradeAttachments{}, fmt.Errorf("service: refund for trade %s failed: %w", trade.TradeID, err)
	}
	payment.Status = models.PaymentRefunded
	return repository.TradeAttachments{UpsertPayment: &payment}, nil
}

// turn loads a trade and verifies the actor may respond to the live proposal.
// A trade past its response deadline is expired on the spot.
func (s *TradeService) turn(tradeID, actorID string) (models.Trade, error) {
	trade, err := s.repo.GetTrade(tradeID)
	if err != nil {
		return models.Trade{}, fmt.Errorf("service: %w", err)
	}
	if !trade.Negotiating() {
		return models.Trade{}, fmt.Errorf("service: %w - trade %s is %s", marketerrors.ErrInvalidState, tradeID, trade.Status)
	}
	if trade.Counterparty(actorID) == "" {
		return models.Trade{}, fmt.Errorf("service: %w - not a party to trade %s", marketerrors.ErrNotAuthorized, tradeID)
	}
	if actorID == trade.ProposedBy {
		return models.Trade{}, fmt.Errorf("service: %w - waiting on the other party", marketerrors.ErrNotAuthorized)
	}

	if now := time.Now().UTC(); trade.ResponseDeadline != nil && now.After(*trade.ResponseDeadline) {
		trade.Status = models.TradeExpired
		trade.CancelReason = "response deadline passed"
		trade.UpdatedAt = now
		if err := s.repo.UpdateTrade(trade, repository.TradeAttachments{}); err != nil && !errors.Is(err, marketerrors.ErrConcurrentModification) {
			return models.Trade{}, fmt.Errorf("service: failed to expire trade %s: %w", tradeID, err)
		}
		return models.Trade{}, fmt.Errorf("service: %w - trade %s response deadline passed", marketerrors.ErrExpired, tradeID)
	}
	return trade, nil
}

// shipmentPlaceholders creates the two not-shipped rows, one per side.
func shipmentPlaceholders(trade models.Trade) []models.TradeShipment {
	return []models.TradeShipment{
		{ShipmentID: utils.GenerateID(), TradeID: trade.TradeID, ShipperID: trade.InitiatorID, Status: models.ShipmentNotShipped},
		{ShipmentID: utils.GenerateID(), TradeID: trade.TradeID, ShipperID: trade.ReceiverID, Status: models.ShipmentNotShipped},
	}
}

// tradeNumber builds the human-readable identifier, e.g. TR-20260831-4F2A1C.
func tradeNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(utils.GenerateID(), "-", ""))[:6]
	return fmt.Sprintf("TR-%s-%s", now.Format("20060102"), suffix)
}
