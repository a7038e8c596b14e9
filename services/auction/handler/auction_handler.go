package handler

import (
	"fmt"
	"net/http"
	"strconv"

	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	GetAuction(auctionID string) (model.Auction, error)
	GetBids(auctionID string) ([]model.Bid, error)
	PlaceBid(auctionID, userID string, amount float64) (model.Bid, error)
	ListAuctions(page int) []model.Auction
	ListEndingSoon() []model.Auction
	ListRecent() []model.Auction
	ListWinning(userID string) []model.Auction
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// GetAuctionHandler handles GET /auctions/auction/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
}

// GetBidsHandler handles GET /bids/:auction_id
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBids(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// SubmitBidHandler handles POST /bids/:auction_id
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	userID := c.GetString("user_id")

	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(auctionID, userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SubmitBidHandler: failed to place bid", map[string]any{
			"auction_id": auctionID,
			"user_id":    userID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid, "bid placed successfully")
	helpers.LogSuccess("SubmitBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": auctionID,
		"user_id":    userID,
		"amount":     bid.Amount,
	})
}

// ListAuctionsHandler handles GET /auctions?page=N
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	auctions := h.service.ListAuctions(page)
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// ListEndingSoonHandler handles GET /auctions/ending-soon
func (h *AuctionHandler) ListEndingSoonHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.ListEndingSoon(), "auctions retrieved successfully")
}

// ListRecentHandler handles GET /auctions/recent
func (h *AuctionHandler) ListRecentHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.ListRecent(), "auctions retrieved successfully")
}

// ListWinningHandler handles GET /auctions/winning/:user_id
func (h *AuctionHandler) ListWinningHandler(c *gin.Context) {
	userID := c.Param("user_id")
	utils.JSONResponse(c, http.StatusOK, h.service.ListWinning(userID), "auctions retrieved successfully")
}
