package repository

import (
	"fmt"
	"sort"
	"sync"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
)

// MemoryStore is a concurrency-safe in-memory store backing the reference
// auction server. It holds raw auction and bid records; price and winner
// derivation belongs to the service layer.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auctionID
	bids     map[string][]model.Bid   // key: auctionID -> bids in insertion order
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
	}
}

// AddAuction inserts or replaces an auction record.
func (s *MemoryStore) AddAuction(auction model.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.ID] = auction
}

// GetAuction returns the auction record without its bid list.
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// GetBids returns a copy of the bid list for an auction, empty when none
// exist.
func (s *MemoryStore) GetBids(auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), s.bids[auctionID]...), nil
}

// RecordBid appends an accepted bid to its auction's list.
func (s *MemoryStore) RecordBid(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
	return nil
}

// Auctions returns all auction records ordered by CreatedAt, ties by ID.
func (s *MemoryStore) Auctions() []model.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all
}
