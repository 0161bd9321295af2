package api

import (
	"tally/pkg/tracker"
)

// BatchApplier is the orchestration surface the handlers call into.
type BatchApplier interface {
	ApplyBatch(requests []tracker.UpdateRequest) []tracker.UpdateResult
}

// Notifier receives the results of a completed batch.
type Notifier interface {
	BatchApplied(results []tracker.UpdateResult)
}

// updateRequestWire is the inbound JSON shape. Amount is a pointer so
// an omitted amount can default to 1.
type updateRequestWire struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Field      string   `json:"field"`
	Amount     *float64 `json:"amount"`
}

type batchResponse struct {
	Results      []tracker.UpdateResult `json:"results"`
	SuccessCount int                    `json:"successCount"`
	FailureCount int                    `json:"failureCount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toRequest expands field aliases and applies the default amount,
// producing the closed record type the orchestrator accepts.
func (w updateRequestWire) toRequest(aliases map[string]string) tracker.UpdateRequest {
	field := w.Field
	if full, ok := aliases[field]; ok {
		field = full
	}
	amount := 1.0
	if w.Amount != nil {
		amount = *w.Amount
	}
	return tracker.UpdateRequest{
		Name:       w.Name,
		Department: w.Department,
		Field:      field,
		Amount:     amount,
	}
}
