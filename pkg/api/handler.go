package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"tally/pkg/tracker"
)

// Server wires the HTTP boundary to the orchestrator and notifier.
// Both are injected so tests can substitute doubles.
type Server struct {
	Applier  BatchApplier
	Notifier Notifier
	Aliases  map[string]string
}

func NewServer(applier BatchApplier, notifier Notifier, aliases map[string]string) *Server {
	return &Server{
		Applier:  applier,
		Notifier: notifier,
		Aliases:  aliases,
	}
}

// postUpdates accepts an ordered JSON array of update requests, applies
// them as one batch and responds with one result per request plus
// aggregate counts. Per-request failures are part of the normal
// response; only a malformed batch shape is an HTTP error.
func (s *Server) postUpdates(w http.ResponseWriter, r *http.Request) {
	var wireRequests []updateRequestWire
	if err := json.NewDecoder(r.Body).Decode(&wireRequests); err != nil {
		log.Debugf("Rejecting malformed batch: %v", err)
		sendError(w, http.StatusBadRequest, "request body must be a JSON array of update requests")
		return
	}

	requests := make([]tracker.UpdateRequest, len(wireRequests))
	for i, wr := range wireRequests {
		requests[i] = wr.toRequest(s.Aliases)
	}

	results := s.Applier.ApplyBatch(requests)

	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}
	log.Infof("Applied batch of %d updates, %d succeeded", len(results), succeeded)

	if s.Notifier != nil {
		s.Notifier.BatchApplied(results)
	}

	body, err := json.Marshal(batchResponse{
		Results:      results,
		SuccessCount: succeeded,
		FailureCount: len(results) - succeeded,
	})
	if err != nil {
		sendError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	sendResponse(w, http.StatusOK, body)
}

func getHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sendError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(errorResponse{Error: message})
	sendResponse(w, status, body)
}
