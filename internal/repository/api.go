package repository

import (
	"context"

	model "auction-client/internal/models"
)

//go:generate mockgen -source=api.go -destination=mock_auction_api.go -package=repository

// AuctionAPI is the client's boundary to the auction server of record. The
// server is the sole arbiter of bid acceptance; everything the client
// displays is derived from what these calls return.
//
// Implementations must keep business rejection (ErrSubmissionRejected)
// distinguishable from transport failure (ErrFetchFailed).
type AuctionAPI interface {
	FetchAuction(ctx context.Context, auctionID string) (model.Auction, error)
	FetchBids(ctx context.Context, auctionID string) ([]model.Bid, error)
	SubmitBid(ctx context.Context, auctionID string, amount float64) (model.Bid, error)
	ListAuctions(ctx context.Context, page int) ([]model.Auction, error)
	ListEndingSoon(ctx context.Context) ([]model.Auction, error)
	ListRecent(ctx context.Context) ([]model.Auction, error)
	ListWinning(ctx context.Context, userID string) ([]model.Auction, error)
}
