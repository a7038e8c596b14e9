package pricing

import (
	"sort"

	"auction-client/internal/models"
)

// TieBreak selects which of two equal-amount bids ranks higher.
type TieBreak int

const (
	// TieBreakEarliest ranks the earlier CreatedAt first: the bid that
	// reached the price first keeps the lead. This is the default.
	TieBreakEarliest TieBreak = iota
	// TieBreakLatest ranks the later CreatedAt first.
	TieBreakLatest
)

// Rank sorts bids descending by amount, ties broken by tb, and returns the
// ordered slice together with the winning bid's ID ("" when bids is empty).
// The input slice is not mutated. Rank is idempotent: ranking its own output
// yields the same order and winner.
func Rank(bids []models.Bid, tb TieBreak) ([]models.Bid, string) {
	ordered := append([]models.Bid(nil), bids...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Amount != ordered[j].Amount {
			return ordered[i].Amount > ordered[j].Amount
		}
		if tb == TieBreakLatest {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	if len(ordered) == 0 {
		return ordered, ""
	}
	return ordered, ordered[0].ID
}

// Annotate stamps each bid's derived status: Winning for the bid matching
// winningID, Outbid for the rest. Bids are annotated in place on the given
// slice, which Rank has already copied.
func Annotate(ordered []models.Bid, winningID string) []models.Bid {
	for i := range ordered {
		if ordered[i].ID == winningID {
			ordered[i].Status = models.BidWinning
		} else {
			ordered[i].Status = models.BidOutbid
		}
	}
	return ordered
}
