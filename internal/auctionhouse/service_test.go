package auctionhouse

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/internal/pricing"
	"auction-client/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, auctions ...model.Auction) *Service {
	t.Helper()
	store := repository.NewMemoryStore()
	for _, a := range auctions {
		store.AddAuction(a)
	}
	return NewService(store, pricing.TieBreakEarliest, 10)
}

func activeAuction(id string, startPrice float64, createdAt time.Time) model.Auction {
	return model.Auction{
		ID:         id,
		Title:      "Auction " + id,
		StartPrice: startPrice,
		EndDate:    time.Now().Add(24 * time.Hour),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

// Tests PlaceBid enforcement of the floor and the current price
func TestService_PlaceBid(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		auction       model.Auction
		seedAmounts   []float64
		userID        string
		amount        float64
		expectedError error
	}{
		{
			name:    "first_bid_above_floor_accepted",
			auction: activeAuction("a1", 10, now),
			userID:  "user1",
			amount:  10.01,
		},
		{
			name:          "first_bid_equal_to_floor_rejected",
			auction:       activeAuction("a1", 10, now),
			userID:        "user1",
			amount:        10,
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:          "bid_equal_to_current_price_rejected",
			auction:       activeAuction("a1", 10, now),
			seedAmounts:   []float64{50},
			userID:        "user2",
			amount:        50,
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:        "bid_above_current_price_accepted",
			auction:     activeAuction("a1", 10, now),
			seedAmounts: []float64{50},
			userID:      "user2",
			amount:      75,
		},
		{
			name:          "zero_amount_rejected",
			auction:       activeAuction("a1", 10, now),
			userID:        "user1",
			amount:        0,
			expectedError: auctionerrors.ErrInvalidAmount,
		},
		{
			name:          "missing_user_rejected",
			auction:       activeAuction("a1", 10, now),
			userID:        "",
			amount:        100,
			expectedError: auctionerrors.ErrNoSession,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			service := newService(t, tc.auction)
			for i, amount := range tc.seedAmounts {
				_, err := service.PlaceBid(tc.auction.ID, fmt.Sprintf("seed-user-%d", i), amount)
				require.NoError(t, err)
			}

			bid, err := service.PlaceBid(tc.auction.ID, tc.userID, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, bid.ID)
				_, parseErr := uuid.Parse(bid.ID)
				require.NoError(t, parseErr, "bid ID should be a valid UUID")
				require.Equal(t, tc.amount, bid.Amount)
				require.Equal(t, model.BidWinning, bid.Status)
			}
		})
	}

	t.Run("unknown_auction", func(t *testing.T) {
		service := newService(t)
		_, err := service.PlaceBid("missing", "user1", 100)
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
	})

	t.Run("ended_auction_rejected", func(t *testing.T) {
		ended := activeAuction("a-ended", 10, now)
		ended.EndDate = time.Now().Add(-time.Hour)
		service := newService(t, ended)

		_, err := service.PlaceBid("a-ended", "user1", 100)
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionEnded))
	})
}

// Concurrent placements at the same amount: the lock serializes acceptance,
// exactly one succeeds and the rest are rejected as too low
func TestService_PlaceBid_SerializesConcurrentBidders(t *testing.T) {
	now := time.Now().UTC()
	service := newService(t, activeAuction("a1", 10, now))

	var wg sync.WaitGroup
	concurrentCount := 20
	results := make([]error, concurrentCount)

	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_, results[i] = service.PlaceBid("a1", fmt.Sprintf("user-%d", i), 100)
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range results {
		if err == nil {
			accepted++
		} else {
			require.True(t, errors.Is(err, auctionerrors.ErrBidTooLow))
		}
	}
	require.Equal(t, 1, accepted, "the server must accept exactly one of the equal racing bids")

	bids, err := service.GetBids("a1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, model.BidWinning, bids[0].Status)
}

// Tests GetBids ranking and annotation
func TestService_GetBids(t *testing.T) {
	now := time.Now().UTC()
	service := newService(t, activeAuction("a1", 10, now))

	_, err := service.PlaceBid("a1", "user1", 50)
	require.NoError(t, err)
	_, err = service.PlaceBid("a1", "user2", 75)
	require.NoError(t, err)
	_, err = service.PlaceBid("a1", "user3", 100)
	require.NoError(t, err)

	bids, err := service.GetBids("a1")
	require.NoError(t, err)
	require.Len(t, bids, 3)

	// Ordered descending, winner first, the rest outbid
	require.Equal(t, 100.0, bids[0].Amount)
	require.Equal(t, model.BidWinning, bids[0].Status)
	require.Equal(t, 75.0, bids[1].Amount)
	require.Equal(t, model.BidOutbid, bids[1].Status)
	require.Equal(t, 50.0, bids[2].Amount)
	require.Equal(t, model.BidOutbid, bids[2].Status)
}

// Tests GetAuction snapshot population
func TestService_GetAuction(t *testing.T) {
	now := time.Now().UTC()
	service := newService(t, activeAuction("a1", 10, now))

	t.Run("no_bids_no_snapshot", func(t *testing.T) {
		auction, err := service.GetAuction("a1")
		require.NoError(t, err)
		require.Nil(t, auction.HighestBid)
	})

	t.Run("snapshot_tracks_highest_bid", func(t *testing.T) {
		_, err := service.PlaceBid("a1", "user1", 50)
		require.NoError(t, err)
		_, err = service.PlaceBid("a1", "user2", 90)
		require.NoError(t, err)

		auction, err := service.GetAuction("a1")
		require.NoError(t, err)
		require.NotNil(t, auction.HighestBid)
		require.Equal(t, 90.0, auction.HighestBid.Amount)
		require.Equal(t, "user2", auction.HighestBid.UserID)
		require.Equal(t, model.BidWinning, auction.HighestBid.Status)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		_, err := service.GetAuction("missing")
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
	})
}

// Tests the list queries
func TestService_Lists(t *testing.T) {
	now := time.Now().UTC()

	soon := activeAuction("a-soon", 10, now)
	soon.EndDate = time.Now().Add(time.Hour)
	later := activeAuction("a-later", 10, now.Add(time.Minute))
	later.EndDate = time.Now().Add(48 * time.Hour)
	ended := activeAuction("a-ended", 10, now.Add(2*time.Minute))
	ended.EndDate = time.Now().Add(-time.Hour)

	service := newService(t, soon, later, ended)

	t.Run("pagination", func(t *testing.T) {
		page1 := service.ListAuctions(1)
		require.Len(t, page1, 3)

		page2 := service.ListAuctions(2)
		require.Empty(t, page2)
	})

	t.Run("ending_soon_excludes_ended", func(t *testing.T) {
		ending := service.ListEndingSoon()
		require.Len(t, ending, 2)
		require.Equal(t, "a-soon", ending[0].ID)
		require.Equal(t, "a-later", ending[1].ID)
	})

	t.Run("recent_newest_first", func(t *testing.T) {
		recent := service.ListRecent()
		require.Len(t, recent, 3)
		require.Equal(t, "a-ended", recent[0].ID)
	})

	t.Run("winning_by_user", func(t *testing.T) {
		_, err := service.PlaceBid("a-soon", "user1", 50)
		require.NoError(t, err)
		_, err = service.PlaceBid("a-soon", "user2", 80)
		require.NoError(t, err)
		_, err = service.PlaceBid("a-later", "user1", 60)
		require.NoError(t, err)

		winningUser1 := service.ListWinning("user1")
		require.Len(t, winningUser1, 1)
		require.Equal(t, "a-later", winningUser1[0].ID)

		winningUser2 := service.ListWinning("user2")
		require.Len(t, winningUser2, 1)
		require.Equal(t, "a-soon", winningUser2[0].ID)
		require.NotNil(t, winningUser2[0].HighestBid)
		require.Equal(t, 80.0, winningUser2[0].HighestBid.Amount)
	})
}
