// Package synchronizer keeps one auction view consistent with the server of
// record. The strategy is refetch-on-mutation: after every accepted
// submission the full bid list is reloaded and price, ordering and winner are
// recomputed from it. No optimistic local merging is performed; the server is
// the single serializer of acceptance order.
package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/internal/pricing"
	"auction-client/internal/repository"
	"auction-client/internal/session"
	"auction-client/utils"
)

// View is the client's resolved picture of one auction: detail, ranked and
// annotated bids, the derived current price and winner. LastError records the
// most recent recoverable failure; when set, the rest of the view holds the
// previous successfully resolved state (stale-but-visible).
type View struct {
	Auction      model.Auction
	Bids         []model.Bid
	CurrentPrice float64
	WinningBidID string
	LastError    error
}

// Synchronizer owns the bid list and resolved price for a single auction
// view. Instances for different auctions are fully independent. All methods
// are safe for concurrent use, though the protocol within one cycle is
// strictly sequential: fetch, resolve, validate, submit, refetch.
type Synchronizer struct {
	repo     repository.AuctionAPI
	sess     session.Session
	tieBreak pricing.TieBreak

	auctionID string

	mu     sync.Mutex
	view   View
	loaded bool // true once one fetch cycle has fully resolved
	closed bool
	gen    uint64 // bumped per cycle; stale completions are discarded
}

// New creates a synchronizer for one auction view. The session identifies
// the bidding user; the tie-break rule must match the server's.
func New(repo repository.AuctionAPI, sess session.Session, auctionID string, tieBreak pricing.TieBreak) *Synchronizer {
	return &Synchronizer{
		repo:      repo,
		sess:      sess,
		tieBreak:  tieBreak,
		auctionID: auctionID,
	}
}

// Activate loads the view: auction detail and bid list are fetched
// concurrently, then price and winner are resolved from the fresh bid list.
// On failure the previous view, if any, stays displayed and the error is
// recorded as recoverable.
func (s *Synchronizer) Activate(ctx context.Context) error {
	gen := s.beginCycle()

	var (
		wg      sync.WaitGroup
		auction model.Auction
		bids    []model.Bid
		aErr    error
		bErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		auction, aErr = s.repo.FetchAuction(ctx, s.auctionID)
	}()
	go func() {
		defer wg.Done()
		bids, bErr = s.repo.FetchBids(ctx, s.auctionID)
	}()
	wg.Wait()

	if err := firstError(ctx.Err(), aErr, bErr); err != nil {
		return s.recordFetchFailure(gen, "activate", err)
	}
	return s.apply(gen, auction, bids, true)
}

// Refresh refetches the bid list and recomputes price and winner, keeping
// the previously fetched auction detail. Used after accepted submissions and
// after server-side rejections, before the bid form is re-offered.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	gen := s.beginCycle()

	bids, err := s.repo.FetchBids(ctx, s.auctionID)
	if err := firstError(ctx.Err(), err); err != nil {
		return s.recordFetchFailure(gen, "refresh", err)
	}

	s.mu.Lock()
	auction := s.view.Auction
	s.mu.Unlock()
	return s.apply(gen, auction, bids, false)
}

// PlaceBid runs one submission cycle: resolve the current price from the
// latest known bid list, validate the candidate locally, submit, and on any
// server outcome refetch the authoritative list. Validation failures
// (ErrInvalidAmount, ErrBidTooLow) are returned without any network call.
//
// A server rejection (ErrSubmissionRejected) means another bid was accepted
// first; the view is refreshed so the caller can re-offer the form with the
// updated price. Even on success the returned bid's standing comes from the
// refetch, never from the submission response alone.
func (s *Synchronizer) PlaceBid(ctx context.Context, amount float64) (model.Bid, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return model.Bid{}, fmt.Errorf("synchronizer: view not activated: %w", auctionerrors.ErrFetchFailed)
	}
	currentPrice := s.view.CurrentPrice
	s.mu.Unlock()

	if err := pricing.ValidateBid(amount, currentPrice); err != nil {
		return model.Bid{}, err
	}

	submitted, err := s.repo.SubmitBid(ctx, s.auctionID, amount)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrSubmissionRejected) {
			utils.Warn("bid rejected by server", map[string]any{
				"auction_id": s.auctionID,
				"user_id":    s.sess.UserID,
				"amount":     amount,
			})
			// Not a local bug: a concurrent bid raised the price first.
			// Refresh so the caller re-offers the form against fresh data.
			if rErr := s.Refresh(ctx); rErr != nil {
				utils.Error("refresh after rejection failed", map[string]any{
					"auction_id": s.auctionID,
					"error":      rErr.Error(),
				})
			}
			return model.Bid{}, err
		}
		return model.Bid{}, err
	}

	// The submission response is not merged locally. Until the refetch
	// reconciles it, the bid is only Pending.
	submitted.Status = model.BidPending

	if err := s.Refresh(ctx); err != nil {
		return submitted, err
	}

	s.mu.Lock()
	for _, b := range s.view.Bids {
		if b.ID == submitted.ID {
			submitted = b
			break
		}
	}
	s.mu.Unlock()

	utils.Info("bid placed", map[string]any{
		"auction_id": s.auctionID,
		"bid_id":     submitted.ID,
		"user_id":    s.sess.UserID,
		"amount":     amount,
		"status":     submitted.Status,
	})
	return submitted, nil
}

// View returns a copy of the current view.
func (s *Synchronizer) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.view
	v.Bids = append([]model.Bid(nil), s.view.Bids...)
	return v
}

// Close marks the view as torn down. Results of in-flight fetches and
// submissions are discarded on completion; no state is mutated afterwards.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Synchronizer) beginCycle() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// apply installs a fetched state unless the view was closed or a newer cycle
// superseded this one. The freshly fetched bid list always wins over the
// auction's cached highestBid snapshot, even when the list is empty; list
// views that have no bid list use pricing.SnapshotPrice instead.
func (s *Synchronizer) apply(gen uint64, auction model.Auction, bids []model.Bid, withAuction bool) error {
	price, err := pricing.ResolveCurrentPrice(bids, auction.StartPrice)
	if err != nil {
		return s.recordFetchFailure(gen, "resolve", fmt.Errorf("%v: %w", err, auctionerrors.ErrUnexpectedFormat))
	}
	ordered, winningID := pricing.Rank(bids, s.tieBreak)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return nil
	}
	if !withAuction {
		auction = s.view.Auction
	}
	s.view = View{
		Auction:      auction,
		Bids:         pricing.Annotate(ordered, winningID),
		CurrentPrice: price,
		WinningBidID: winningID,
	}
	s.loaded = true
	return nil
}

// recordFetchFailure keeps the previous resolved view visible and stores the
// error as recoverable, unless the view is already gone.
func (s *Synchronizer) recordFetchFailure(gen uint64, op string, err error) error {
	wrapped := err
	if !errors.Is(err, auctionerrors.ErrFetchFailed) {
		wrapped = fmt.Errorf("%v: %w", err, auctionerrors.ErrFetchFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return wrapped
	}
	s.view.LastError = wrapped

	utils.Warn("auction view fetch failed", map[string]any{
		"auction_id": s.auctionID,
		"op":         op,
		"error":      err.Error(),
	})
	return wrapped
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
