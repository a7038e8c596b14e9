package server

import (
	handler "auction-client/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the reference auction server.
// The tokens table maps bearer tokens to user IDs for bid submission.
func SetupRouter(service handler.AuctionServiceInterface, tokens map[string]string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(service)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/auction/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.GET("/ending-soon", auctionHandler.ListEndingSoonHandler)
		auctions.GET("/recent", auctionHandler.ListRecentHandler)
		auctions.GET("/winning/:user_id", auctionHandler.ListWinningHandler)
	}

	bids := router.Group("/bids")
	{
		bids.GET("/:auction_id", auctionHandler.GetBidsHandler)
		bids.POST("/:auction_id", SessionMiddleware(tokens), auctionHandler.SubmitBidHandler)
	}

	return router
}
