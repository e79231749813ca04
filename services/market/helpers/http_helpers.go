package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
	"swapmarket/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Messages stay in user-facing categories and never leak internal detail.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrValidation):
		return http.StatusBadRequest, "input rejected"
	case errors.Is(err, marketerrors.ErrNotAuthorized):
		return http.StatusForbidden, "not your turn"
	case errors.Is(err, marketerrors.ErrOfferNotFound),
		errors.Is(err, marketerrors.ErrTradeNotFound),
		errors.Is(err, marketerrors.ErrProductNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, marketerrors.ErrInvalidState),
		errors.Is(err, marketerrors.ErrWrongPhase):
		return http.StatusConflict, "already decided"
	case errors.Is(err, marketerrors.ErrExpired):
		return http.StatusGone, "too late"
	case errors.Is(err, marketerrors.ErrItemLocked):
		return http.StatusConflict, "item committed to another negotiation"
	case errors.Is(err, marketerrors.ErrDuplicateActiveOffer):
		return http.StatusConflict, "an offer is already open"
	case errors.Is(err, marketerrors.ErrConcurrentModification):
		return http.StatusConflict, "conflict, try again"
	case errors.Is(err, marketerrors.ErrDependencyFailure):
		return http.StatusBadGateway, "upstream service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToOfferResponse converts a domain offer to its wire form.
func ToOfferResponse(o model.Offer) OfferResponse {
	return OfferResponse{
		OfferID:    o.OfferID,
		ProductID:  o.ProductID,
		BuyerID:    o.BuyerID,
		SellerID:   o.SellerID,
		Amount:     o.Amount.StringFixed(2),
		Status:     o.Status,
		ProposedBy: o.ProposedBy,
		ExpiresAt:  o.ExpiresAt.UTC().Format(time.RFC3339),
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
