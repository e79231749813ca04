package server

import (
	handler "swapmarket/services/market/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(offerService handler.OfferServiceInterface, tradeService handler.TradeServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	offerHandler := handler.NewOfferHandler(offerService)
	tradeHandler := handler.NewTradeHandler(tradeService)

	offers := router.Group("/offers")
	{
		offers.POST("", offerHandler.CreateOfferHandler)
		offers.GET("/:offer_id", offerHandler.GetOfferHandler)
		offers.POST("/:offer_id/counter", offerHandler.CounterOfferHandler)
		offers.POST("/:offer_id/accept", offerHandler.AcceptOfferHandler)
		offers.POST("/:offer_id/reject", offerHandler.RejectOfferHandler)
		offers.POST("/:offer_id/withdraw", offerHandler.WithdrawOfferHandler)
	}

	trades := router.Group("/trades")
	{
		trades.POST("", tradeHandler.ProposeTradeHandler)
		trades.GET("/:trade_id", tradeHandler.GetTradeHandler)
		trades.POST("/:trade_id/respond", tradeHandler.RespondTradeHandler)
		trades.POST("/:trade_id/payment", tradeHandler.RecordPaymentHandler)
		trades.POST("/:trade_id/ship", tradeHandler.MarkShippedHandler)
		trades.POST("/:trade_id/confirm", tradeHandler.ConfirmReceiptHandler)
		trades.POST("/:trade_id/dispute", tradeHandler.RaiseDisputeHandler)
		trades.POST("/:trade_id/resolve", tradeHandler.ResolveDisputeHandler)
		trades.POST("/:trade_id/cancel", tradeHandler.CancelTradeHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/offers", offerHandler.ListOffersByUserHandler)
		users.GET("/:user_id/trades", tradeHandler.ListTradesByUserHandler)
	}

	return router
}
