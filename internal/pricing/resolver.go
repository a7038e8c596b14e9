// Package pricing holds the pure auction math: deriving the current price
// from a bid history, gating candidate bids against it, and ranking bids to
// designate a winner. Every view must go through these functions instead of
// re-deriving prices ad hoc.
package pricing

import (
	"fmt"
	"math"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
)

// ResolveCurrentPrice derives the price a new bid must exceed: the maximum
// bid amount, or startPrice when no bids exist. The amount check is
// defensive; a NaN or negative amount can only mean the upstream data is
// corrupted, since such a bid could never have been accepted.
func ResolveCurrentPrice(bids []models.Bid, startPrice float64) (float64, error) {
	price := startPrice
	for _, b := range bids {
		if math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) || b.Amount < 0 {
			return 0, fmt.Errorf("pricing: bid %s has amount %v: %w", b.ID, b.Amount, auctionerrors.ErrInvalidBidData)
		}
		if b.Amount > price {
			price = b.Amount
		}
	}
	return price, nil
}

// SnapshotPrice estimates the current price from an auction record alone,
// for list views that have not fetched a bid list. It trusts the server's
// highestBid snapshot when present, floored by the start price. A freshly
// fetched bid list always takes precedence over this estimate.
func SnapshotPrice(auction models.Auction) float64 {
	if auction.HighestBid != nil && auction.HighestBid.Amount > auction.StartPrice {
		return auction.HighestBid.Amount
	}
	return auction.StartPrice
}
