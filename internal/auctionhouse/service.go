// Package auctionhouse is the server side of the bid protocol: it accepts or
// rejects candidate bids under a single lock, so that concurrent bidders who
// both passed client-side validation against a stale price are serialized
// here and exactly one of them wins.
package auctionhouse

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/internal/pricing"
	"auction-client/internal/repository"
	"auction-client/utils"
)

// Service implements auction queries and bid acceptance over a MemoryStore.
type Service struct {
	placeMu  sync.Mutex // serializes bid acceptance across all auctions
	store    *repository.MemoryStore
	tieBreak pricing.TieBreak
	pageSize int
}

// NewService creates an auction service with the given tie-break rule for
// equal-amount bids and page size for list queries.
func NewService(store *repository.MemoryStore, tieBreak pricing.TieBreak, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		store:    store,
		tieBreak: tieBreak,
		pageSize: pageSize,
	}
}

// GetAuction returns auction detail with the HighestBid snapshot populated
// from the current bid list.
func (s *Service) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotFound)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	return s.withSnapshot(auction), nil
}

// withSnapshot attaches the current highest bid to an auction record, the
// snapshot list views rely on when they have no bid list of their own.
func (s *Service) withSnapshot(auction model.Auction) model.Auction {
	bids, err := s.store.GetBids(auction.ID)
	if err != nil {
		return auction
	}
	if ordered, winningID := pricing.Rank(bids, s.tieBreak); winningID != "" {
		highest := ordered[0]
		highest.Status = model.BidWinning
		auction.HighestBid = &highest
	}
	return auction
}

// GetBids returns the auction's bids ranked and annotated with their derived
// Winning/Outbid status.
func (s *Service) GetBids(auctionID string) ([]model.Bid, error) {
	bids, err := s.store.GetBids(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	ordered, winningID := pricing.Rank(bids, s.tieBreak)
	return pricing.Annotate(ordered, winningID), nil
}

// PlaceBid validates and records a bid. The check-then-record sequence runs
// under one lock: whichever of two racing bids acquires it first raises the
// current price, and the loser is rejected with ErrBidTooLow.
func (s *Service) PlaceBid(auctionID, userID string, amount float64) (model.Bid, error) {
	if userID == "" {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", auctionerrors.ErrNoSession)
	}

	s.placeMu.Lock()
	defer s.placeMu.Unlock()

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", err)
	}
	if time.Now().After(auction.EndDate) {
		return model.Bid{}, fmt.Errorf("service: place bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionEnded)
	}

	bids, err := s.store.GetBids(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", err)
	}
	currentPrice, err := pricing.ResolveCurrentPrice(bids, auction.StartPrice)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", err)
	}
	if err := pricing.ValidateBid(amount, currentPrice); err != nil {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", err)
	}

	now := time.Now().UTC()
	bid := model.Bid{
		ID:        utils.GenerateID(),
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		Status:    model.BidWinning, // accepted bid strictly exceeds all others
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.RecordBid(bid); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, userID, err)
	}
	return bid, nil
}

// ListAuctions returns one page of auctions ordered by creation time. Pages
// are 1-based; an out-of-range page returns an empty slice.
func (s *Service) ListAuctions(page int) []model.Auction {
	if page < 1 {
		page = 1
	}
	all := s.store.Auctions()

	start := (page - 1) * s.pageSize
	if start >= len(all) {
		return []model.Auction{}
	}
	end := start + s.pageSize
	if end > len(all) {
		end = len(all)
	}
	return s.withSnapshots(all[start:end])
}

// ListEndingSoon returns active auctions ordered by soonest EndDate.
func (s *Service) ListEndingSoon() []model.Auction {
	now := time.Now()
	active := make([]model.Auction, 0)
	for _, a := range s.store.Auctions() {
		if a.EndDate.After(now) {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].EndDate.Before(active[j].EndDate) })
	return s.withSnapshots(capped(active, s.pageSize))
}

// ListRecent returns the most recently created auctions first.
func (s *Service) ListRecent() []model.Auction {
	all := s.store.Auctions()
	recent := append([]model.Auction(nil), all...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	return s.withSnapshots(capped(recent, s.pageSize))
}

// ListWinning returns the auctions whose current winning bid belongs to the
// user.
func (s *Service) ListWinning(userID string) []model.Auction {
	winning := make([]model.Auction, 0)
	for _, a := range s.store.Auctions() {
		bids, err := s.store.GetBids(a.ID)
		if err != nil {
			continue
		}
		ordered, winningID := pricing.Rank(bids, s.tieBreak)
		if winningID != "" && ordered[0].UserID == userID {
			winning = append(winning, s.withSnapshot(a))
		}
	}
	return winning
}

func (s *Service) withSnapshots(auctions []model.Auction) []model.Auction {
	out := make([]model.Auction, len(auctions))
	for i, a := range auctions {
		out[i] = s.withSnapshot(a)
	}
	return out
}

func capped(auctions []model.Auction, n int) []model.Auction {
	if len(auctions) > n {
		return auctions[:n]
	}
	return auctions
}
