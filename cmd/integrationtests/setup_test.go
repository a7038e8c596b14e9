package integrationtests

import (
	"net/http/httptest"
	"testing"
	"time"

	"auction-client/internal/auctionhouse"
	model "auction-client/internal/models"
	"auction-client/internal/pricing"
	"auction-client/internal/repository"
	"auction-client/internal/server"
	"auction-client/internal/session"
	"auction-client/internal/synchronizer"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// testTokens maps bearer tokens to user IDs for the test server
var testTokens = map[string]string{
	"token-alice": "alice",
	"token-bob":   "bob",
}

// StartTestServer hosts the reference auction server over real HTTP, seeded
// with the given auctions.
func StartTestServer(t *testing.T, auctions ...model.Auction) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	for _, auction := range auctions {
		store.AddAuction(auction)
	}

	service := auctionhouse.NewService(store, pricing.TieBreakEarliest, 10)
	srv := httptest.NewServer(server.SetupRouter(service, testTokens))
	t.Cleanup(srv.Close)
	return srv
}

// NewClient wires an HTTP repository and a synchronizer for one user's view
// of one auction.
func NewClient(srv *httptest.Server, userID, auctionID string) *synchronizer.Synchronizer {
	sess := session.New(userID, "token-"+userID)
	repo := repository.NewHTTPRepo(srv.URL, 5*time.Second, sess)
	return synchronizer.New(repo, sess, auctionID, pricing.TieBreakEarliest)
}

// NewAuction builds an active auction for seeding
func NewAuction(id string, startPrice float64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		ID:          id,
		Title:       "Auction " + id,
		Description: "integration test auction",
		StartPrice:  startPrice,
		EndDate:     now.Add(24 * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewAuctionID returns a fresh auction identifier
func NewAuctionID() string {
	return utils.GenerateID()
}
