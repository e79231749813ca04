package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model "swapmarket/internal/models"
	trade "swapmarket/internal/tradeService"
	"swapmarket/services/market/helpers"
	"swapmarket/utils"
)

type TradeServiceInterface interface {
	ProposeTrade(ctx context.Context, in trade.ProposeInput) (model.Trade, error)
	RespondToTrade(ctx context.Context, tradeID, actorID, action, message string, counter *trade.CounterInput) (model.Trade, error)
	RecordCashPayment(ctx context.Context, tradeID, payerID string) (model.Trade, error)
	MarkShipped(ctx context.Context, tradeID, shipperID, carrier, trackingNumber string) (model.Trade, error)
	ConfirmReceipt(ctx context.Context, tradeID, confirmerID string) (model.Trade, error)
	RaiseDispute(ctx context.Context, tradeID, raisedByID, reason, description string) (model.Trade, error)
	ResolveDispute(ctx context.Context, tradeID, resolution, outcome string) (model.Trade, error)
	CancelTrade(ctx context.Context, tradeID, actorID, reason string) (model.Trade, error)
	GetTrade(tradeID, requesterID string) (trade.Detail, error)
	ListTradesByUser(userID string, limit, offset int) ([]model.Trade, error)
}

type TradeHandler struct {
	service TradeServiceInterface
}

func NewTradeHandler(service TradeServiceInterface) *TradeHandler {
	return &TradeHandler{service: service}
}

// ProposeTradeHandler handles POST /trades
func (h *TradeHandler) ProposeTradeHandler(c *gin.Context) {
	var req helpers.ProposeTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ProposeTradeHandler", err)
		return
	}

	in := trade.ProposeInput{
		InitiatorID:    req.InitiatorID,
		ReceiverID:     req.ReceiverID,
		InitiatorItems: toItemInputs(req.InitiatorItems),
		ReceiverItems:  toItemInputs(req.ReceiverItems),
		CashAmount:     req.CashAmount,
		CashPayerID:    req.CashPayerID,
		Message:        req.Message,
	}

	t, err := h.service.ProposeTrade(c.Request.Context(), in)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ProposeTradeHandler: failed to propose trade", map[string]any{
			"initiator_id": req.InitiatorID,
			"receiver_id":  req.ReceiverID,
			"error":        err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, t, "trade proposed successfully")
	helpers.LogSuccess("ProposeTradeHandler", "trade proposed successfully", map[string]any{
		"trade_id":     t.TradeID,
		"trade_number": t.TradeNumber,
		"initiator_id": t.InitiatorID,
		"receiver_id":  t.ReceiverID,
	})
}

// RespondTradeHandler handles POST /trades/:trade_id/respond
func (h *TradeHandler) RespondTradeHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.RespondTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RespondTradeHandler", err)
		return
	}

	var counter *trade.CounterInput
	if req.Counter != nil {
		counter = &trade.CounterInput{
			InitiatorItems: toItemInputs(req.Counter.InitiatorItems),
			ReceiverItems:  toItemInputs(req.Counter.ReceiverItems),
			CashAmount:     req.Counter.CashAmount,
			CashPayerID:    req.Counter.CashPayerID,
		}
	}

	t, err := h.service.RespondToTrade(c.Request.Context(), tradeID, req.ActorID, req.Action, req.Message, counter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RespondTradeHandler: trade response failed", map[string]any{
			"trade_id": tradeID,
			"actor_id": req.ActorID,
			"action":   req.Action,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "trade response recorded successfully")
	helpers.LogSuccess("RespondTradeHandler", "trade response recorded successfully", map[string]any{
		"trade_id": t.TradeID,
		"action":   req.Action,
		"status":   t.Status,
	})
}

// RecordPaymentHandler handles POST /trades/:trade_id/payment
func (h *TradeHandler) RecordPaymentHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordPaymentHandler", err)
		return
	}

	t, err := h.service.RecordCashPayment(c.Request.Context(), tradeID, req.PayerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("RecordPaymentHandler: cash payment failed", map[string]any{
			"trade_id": tradeID,
			"payer_id": req.PayerID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "payment recorded successfully")
	helpers.LogSuccess("RecordPaymentHandler", "payment recorded successfully", map[string]any{
		"trade_id": t.TradeID,
		"status":   t.Status,
	})
}

// MarkShippedHandler handles POST /trades/:trade_id/ship
func (h *TradeHandler) MarkShippedHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.MarkShippedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "MarkShippedHandler", err)
		return
	}

	t, err := h.service.MarkShipped(c.Request.Context(), tradeID, req.ShipperID, req.Carrier, req.TrackingNumber)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkShippedHandler: shipment update failed", map[string]any{
			"trade_id":   tradeID,
			"shipper_id": req.ShipperID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "shipment recorded successfully")
	helpers.LogSuccess("MarkShippedHandler", "shipment recorded successfully", map[string]any{
		"trade_id":   t.TradeID,
		"shipper_id": req.ShipperID,
		"status":     t.Status,
	})
}

// ConfirmReceiptHandler handles POST /trades/:trade_id/confirm
func (h *TradeHandler) ConfirmReceiptHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ConfirmReceiptHandler", err)
		return
	}

	t, err := h.service.ConfirmReceipt(c.Request.Context(), tradeID, req.ConfirmerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ConfirmReceiptHandler: receipt confirmation failed", map[string]any{
			"trade_id":     tradeID,
			"confirmer_id": req.ConfirmerID,
			"error":        err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "receipt confirmed successfully")
	helpers.LogSuccess("ConfirmReceiptHandler", "receipt confirmed successfully", map[string]any{
		"trade_id": t.TradeID,
		"status":   t.Status,
	})
}

// RaiseDisputeHandler handles POST /trades/:trade_id/dispute
func (h *TradeHandler) RaiseDisputeHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.RaiseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RaiseDisputeHandler", err)
		return
	}

	t, err := h.service.RaiseDispute(c.Request.Context(), tradeID, req.RaisedByID, req.Reason, req.Description)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RaiseDisputeHandler: dispute failed", map[string]any{
			"trade_id":     tradeID,
			"raised_by_id": req.RaisedByID,
			"error":        err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "dispute raised successfully")
	helpers.LogSuccess("RaiseDisputeHandler", "dispute raised successfully", map[string]any{
		"trade_id": t.TradeID,
		"reason":   req.Reason,
	})
}

// ResolveDisputeHandler handles POST /trades/:trade_id/resolve
func (h *TradeHandler) ResolveDisputeHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ResolveDisputeHandler", err)
		return
	}

	t, err := h.service.ResolveDispute(c.Request.Context(), tradeID, req.Resolution, req.Outcome)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ResolveDisputeHandler: dispute resolution failed", map[string]any{
			"trade_id": tradeID,
			"outcome":  req.Outcome,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "dispute resolved successfully")
	helpers.LogSuccess("ResolveDisputeHandler", "dispute resolved successfully", map[string]any{
		"trade_id": t.TradeID,
		"outcome":  req.Outcome,
		"status":   t.Status,
	})
}

// CancelTradeHandler handles POST /trades/:trade_id/cancel
func (h *TradeHandler) CancelTradeHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")

	var req helpers.CancelTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CancelTradeHandler", err)
		return
	}

	t, err := h.service.CancelTrade(c.Request.Context(), tradeID, req.ActorID, req.Reason)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelTradeHandler: cancellation failed", map[string]any{
			"trade_id": tradeID,
			"actor_id": req.ActorID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "trade cancelled successfully")
	helpers.LogSuccess("CancelTradeHandler", "trade cancelled successfully", map[string]any{
		"trade_id": t.TradeID,
		"actor_id": req.ActorID,
	})
}

// GetTradeHandler handles GET /trades/:trade_id
func (h *TradeHandler) GetTradeHandler(c *gin.Context) {
	tradeID := c.Param("trade_id")
	requesterID := c.Query("requester_id")

	detail, err := h.service.GetTrade(tradeID, requesterID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetTradeHandler: error retrieving trade", map[string]any{"trade_id": tradeID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "trade retrieved successfully")
}

// ListTradesByUserHandler handles GET /users/:user_id/trades
func (h *TradeHandler) ListTradesByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := pagination(c)

	trades, err := h.service.ListTradesByUser(userID, limit, offset)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListTradesByUserHandler: error retrieving trades", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if trades == nil {
		trades = []model.Trade{}
	}

	utils.JSONResponse(c, http.StatusOK, trades, "trades retrieved successfully")
	helpers.LogSuccess("ListTradesByUserHandler", "trades retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(trades),
	})
}

func toItemInputs(items []helpers.TradeItemRequest) []trade.ItemInput {
	out := make([]trade.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, trade.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
