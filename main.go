package main

import (
	"fmt"
	"os"
	"time"

	"auction-client/internal/auctionhouse"
	"auction-client/internal/config"
	model "auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/internal/server"
	"auction-client/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	store := repository.NewMemoryStore()
	prepopulateAuctions(store)

	service := auctionhouse.NewService(store, cfg.TieBreakRule(), cfg.Bidding.PageSize)

	router := server.SetupRouter(service, demoTokens())

	addr := cfg.Addr()
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateAuctions adds sample auctions to the in-memory store
func prepopulateAuctions(store *repository.MemoryStore) {
	now := time.Now().UTC()
	auctions := []model.Auction{
		{ID: utils.GenerateID(), Title: "Vintage camera", Description: "1960s rangefinder, working", StartPrice: 100, EndDate: now.Add(48 * time.Hour), CreatedAt: now, UpdatedAt: now},
		{ID: utils.GenerateID(), Title: "Road bike", Description: "Aluminium frame, 56cm", StartPrice: 200, EndDate: now.Add(24 * time.Hour), CreatedAt: now, UpdatedAt: now},
		{ID: utils.GenerateID(), Title: "Turntable", Description: "Belt drive, new stylus", StartPrice: 150, EndDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now},
	}

	for _, auction := range auctions {
		store.AddAuction(auction)
	}
}

// demoTokens maps bearer tokens to user IDs for the seeded environment
func demoTokens() map[string]string {
	return map[string]string{
		"token-alice": "alice",
		"token-bob":   "bob",
	}
}
