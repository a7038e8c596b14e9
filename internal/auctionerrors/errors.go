package auctionerrors

import "errors"

// Client-side validation errors
var (
	ErrInvalidAmount  = errors.New("bid amount must be a positive finite number")
	ErrBidTooLow      = errors.New("bid amount does not exceed current price")
	ErrInvalidBidData = errors.New("bid list contains an invalid amount")
)

// Synchronization errors
var (
	ErrSubmissionRejected = errors.New("bid rejected by server")
	ErrFetchFailed        = errors.New("failed to fetch auction data")
	ErrUnexpectedFormat   = errors.New("unexpected response format")
)

// Server-side errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionEnded    = errors.New("auction has ended")
	ErrNoSession       = errors.New("no session")
)
