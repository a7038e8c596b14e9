package models

import "time"

// BidStatus is the derived standing of a bid within its auction.
// Winning and Outbid are recomputed from the full bid list after every
// refetch; Pending is client-local only, for a bid that was submitted but
// not yet reconciled against the server.
type BidStatus string

const (
	BidPending BidStatus = "Pending"
	BidWinning BidStatus = "Winning"
	BidOutbid  BidStatus = "Outbid"
)

// User represents an auction participant
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Auction represents a timed auction listing. StartPrice is the immutable
// floor set at creation; the current price is always derived from the bid
// list, never stored.
type Auction struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	StartPrice  float64   `json:"start_price"`
	EndDate     time.Time `json:"end_date"`
	Bids        []Bid     `json:"bids,omitempty"`
	HighestBid  *Bid      `json:"highestBid,omitempty"` // server-side snapshot, may lag the bid list
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Bid represents a user's bid on an auction
type Bid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"bid_amount"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
