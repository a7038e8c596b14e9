package pricing

import (
	"fmt"
	"math"

	"auction-client/internal/auctionerrors"
)

// ValidateBid gates a candidate amount against the freshly resolved current
// price. Equal-to-current-price bids are rejected; a bid must strictly
// exceed the price to be submittable. The amount passes through unchanged on
// success; rounding and currency formatting are presentation concerns.
//
// ValidateBid never touches the network. Callers must supply a currentPrice
// resolved from the latest known bid list, not a stale cache.
func ValidateBid(amount, currentPrice float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("pricing: candidate amount %v: %w", amount, auctionerrors.ErrInvalidAmount)
	}
	if amount <= currentPrice {
		return fmt.Errorf("pricing: candidate amount %v does not exceed current price %v: %w",
			amount, currentPrice, auctionerrors.ErrBidTooLow)
	}
	return nil
}
