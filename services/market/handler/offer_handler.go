package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model "swapmarket/internal/models"
	"swapmarket/services/market/helpers"
	"swapmarket/utils"
)

type OfferServiceInterface interface {
	CreateOffer(ctx context.Context, productID, buyerID string, amount decimal.Decimal) (model.Offer, error)
	CounterOffer(ctx context.Context, offerID, actorID string, amount decimal.Decimal) (model.Offer, error)
	AcceptOffer(ctx context.Context, offerID, actorID string) (model.Offer, error)
	RejectOffer(ctx context.Context, offerID, actorID string) (model.Offer, error)
	WithdrawOffer(ctx context.Context, offerID, actorID string) (model.Offer, error)
	GetOffer(offerID, requesterID string) (model.Offer, error)
	ListOffersByUser(userID string, limit, offset int) ([]model.Offer, error)
}

type OfferHandler struct {
	service OfferServiceInterface
}

func NewOfferHandler(service OfferServiceInterface) *OfferHandler {
	return &OfferHandler{service: service}
}

// CreateOfferHandler handles POST /offers
func (h *OfferHandler) CreateOfferHandler(c *gin.Context) {
	var req helpers.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOfferHandler", err)
		return
	}

	offer, err := h.service.CreateOffer(c.Request.Context(), req.ProductID, req.BuyerID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateOfferHandler: failed to create offer", map[string]any{
			"product_id": req.ProductID,
			"buyer_id":   req.BuyerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToOfferResponse(offer), "offer created successfully")
	helpers.LogSuccess("CreateOfferHandler", "offer created successfully", map[string]any{
		"offer_id":   offer.OfferID,
		"product_id": offer.ProductID,
		"buyer_id":   offer.BuyerID,
		"amount":     offer.Amount.StringFixed(2),
	})
}

// CounterOfferHandler handles POST /offers/:offer_id/counter
func (h *OfferHandler) CounterOfferHandler(c *gin.Context) {
	offerID := c.Param("offer_id")

	var req helpers.CounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CounterOfferHandler", err)
		return
	}

	offer, err := h.service.CounterOffer(c.Request.Context(), offerID, req.ActorID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CounterOfferHandler: failed to counter offer", map[string]any{
			"offer_id": offerID,
			"actor_id": req.ActorID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToOfferResponse(offer), "offer countered successfully")
	helpers.LogSuccess("CounterOfferHandler", "offer countered successfully", map[string]any{
		"offer_id": offer.OfferID,
		"amount":   offer.Amount.StringFixed(2),
	})
}

// AcceptOfferHandler handles POST /offers/:offer_id/accept
func (h *OfferHandler) AcceptOfferHandler(c *gin.Context) {
	h.decide(c, "AcceptOfferHandler", "offer accepted successfully", h.service.AcceptOffer)
}

// RejectOfferHandler handles POST /offers/:offer_id/reject
func (h *OfferHandler) RejectOfferHandler(c *gin.Context) {
	h.decide(c, "RejectOfferHandler", "offer rejected successfully", h.service.RejectOffer)
}

// WithdrawOfferHandler handles POST /offers/:offer_id/withdraw
func (h *OfferHandler) WithdrawOfferHandler(c *gin.Context) {
	h.decide(c, "WithdrawOfferHandler", "offer withdrawn successfully", h.service.WithdrawOffer)
}

// decide handles the shared shape of accept/reject/withdraw.
func (h *OfferHandler) decide(c *gin.Context, handlerName, successMsg string,
	op func(ctx context.Context, offerID, actorID string) (model.Offer, error)) {

	offerID := c.Param("offer_id")

	var req helpers.OfferActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	offer, err := op(c.Request.Context(), offerID, req.ActorID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn(handlerName+": offer transition failed", map[string]any{
			"offer_id": offerID,
			"actor_id": req.ActorID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToOfferResponse(offer), successMsg)
	helpers.LogSuccess(handlerName, successMsg, map[string]any{
		"offer_id": offer.OfferID,
		"status":   offer.Status,
	})
}

// GetOfferHandler handles GET /offers/:offer_id
func (h *OfferHandler) GetOfferHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	requesterID := c.Query("requester_id")

	offer, err := h.service.GetOffer(offerID, requesterID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetOfferHandler: error retrieving offer", map[string]any{"offer_id": offerID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToOfferResponse(offer), "offer retrieved successfully")
}

// ListOffersByUserHandler handles GET /users/:user_id/offers
func (h *OfferHandler) ListOffersByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := pagination(c)

	offers, err := h.service.ListOffersByUser(userID, limit, offset)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListOffersByUserHandler: error retrieving offers", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	resp := make([]helpers.OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, helpers.ToOfferResponse(o))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "offers retrieved successfully")
	helpers.LogSuccess("ListOffersByUserHandler", "offers retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(resp),
	})
}

// pagination reads limit/offset query params, zero when absent or malformed.
func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}
