package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/internal/session"
)

// HTTPRepo implements AuctionAPI over the auction server's JSON API. All
// responses arrive wrapped in the server's response envelope; amounts are
// JSON numbers and timestamps RFC 3339.
type HTTPRepo struct {
	baseURL string
	client  *http.Client
	sess    session.Session
}

// NewHTTPRepo creates a repository client for the given base URL. The
// session token, when present, is attached to every request.
func NewHTTPRepo(baseURL string, timeout time.Duration, sess session.Session) *HTTPRepo {
	return &HTTPRepo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		sess:    sess,
	}
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// FetchAuction retrieves auction detail, including the optional highestBid
// snapshot.
func (r *HTTPRepo) FetchAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var auction model.Auction
	if err := r.get(ctx, "/auctions/auction/"+auctionID, &auction); err != nil {
		return model.Auction{}, fmt.Errorf("fetch auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// FetchBids retrieves the full bid list for an auction. A missing list is
// returned as an empty slice, never nil.
func (r *HTTPRepo) FetchBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.get(ctx, "/bids/"+auctionID, &bids); err != nil {
		return nil, fmt.Errorf("fetch bids for auction %s: %w", auctionID, err)
	}
	if bids == nil {
		bids = []model.Bid{}
	}
	return bids, nil
}

// SubmitBid posts a candidate bid. The server re-validates under its own
// lock; a business rejection surfaces as ErrSubmissionRejected carrying the
// server's message, distinct from transport failure.
func (r *HTTPRepo) SubmitBid(ctx context.Context, auctionID string, amount float64) (model.Bid, error) {
	payload, err := json.Marshal(map[string]float64{"amount": amount})
	if err != nil {
		return model.Bid{}, fmt.Errorf("submit bid: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/bids/"+auctionID, bytes.NewReader(payload))
	if err != nil {
		return model.Bid{}, fmt.Errorf("submit bid: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return model.Bid{}, fmt.Errorf("submit bid for auction %s: %v: %w", auctionID, err, auctionerrors.ErrFetchFailed)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return model.Bid{}, fmt.Errorf("submit bid for auction %s: %w", auctionID, err)
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		var bid model.Bid
		if err := json.Unmarshal(env.Data, &bid); err != nil {
			return model.Bid{}, fmt.Errorf("submit bid for auction %s: decode bid: %v: %w", auctionID, err, auctionerrors.ErrUnexpectedFormat)
		}
		return bid, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return model.Bid{}, fmt.Errorf("submit bid for auction %s: %w", auctionID, auctionerrors.ErrNoSession)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return model.Bid{}, fmt.Errorf("submit bid for auction %s: %s: %w", auctionID, env.Message, auctionerrors.ErrSubmissionRejected)
	default:
		return model.Bid{}, fmt.Errorf("submit bid for auction %s: status %d: %w", auctionID, resp.StatusCode, auctionerrors.ErrFetchFailed)
	}
}

// ListAuctions retrieves one page of the auction index.
func (r *HTTPRepo) ListAuctions(ctx context.Context, page int) ([]model.Auction, error) {
	return r.listAuctions(ctx, fmt.Sprintf("/auctions?page=%d", page))
}

// ListEndingSoon retrieves active auctions closing soonest.
func (r *HTTPRepo) ListEndingSoon(ctx context.Context) ([]model.Auction, error) {
	return r.listAuctions(ctx, "/auctions/ending-soon")
}

// ListRecent retrieves the most recently created auctions.
func (r *HTTPRepo) ListRecent(ctx context.Context) ([]model.Auction, error) {
	return r.listAuctions(ctx, "/auctions/recent")
}

// ListWinning retrieves the auctions a user currently leads.
func (r *HTTPRepo) ListWinning(ctx context.Context, userID string) ([]model.Auction, error) {
	return r.listAuctions(ctx, "/auctions/winning/"+userID)
}

func (r *HTTPRepo) listAuctions(ctx context.Context, path string) ([]model.Auction, error) {
	var auctions []model.Auction
	if err := r.get(ctx, path, &auctions); err != nil {
		return nil, fmt.Errorf("list auctions %s: %w", path, err)
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	return auctions, nil
}

func (r *HTTPRepo) authorize(req *http.Request) {
	if r.sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+r.sess.Token)
	}
}

// get performs a GET and unmarshals the envelope's data field into out.
func (r *HTTPRepo) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, auctionerrors.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("status %d: %w", resp.StatusCode, auctionerrors.ErrAuctionNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %w", resp.StatusCode, auctionerrors.ErrFetchFailed)
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %v: %w", err, auctionerrors.ErrUnexpectedFormat)
	}
	return nil
}

func decodeEnvelope(body io.Reader) (envelope, error) {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response: %v: %w", err, auctionerrors.ErrUnexpectedFormat)
	}
	return env, nil
}
