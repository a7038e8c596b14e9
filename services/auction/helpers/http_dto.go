package helpers

// Request DTOs. Responses reuse the model types directly; their JSON tags
// are the wire contract.
type SubmitBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
