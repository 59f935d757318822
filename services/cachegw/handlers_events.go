package cachegw

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// artifactEvent is a client-reported cache-usage observation. Events are
// validated for shape, counted, optionally published, and never persisted.
type artifactEvent struct {
	SessionID string `json:"sessionId"`
	Source    string `json:"source"`
	Hash      string `json:"hash"`
	Event     string `json:"event"`
	Duration  *int64 `json:"duration,omitempty"`
}

func (e artifactEvent) validate() (string, bool) {
	if e.SessionID == "" || e.Source == "" || e.Hash == "" || e.Event == "" {
		return "Invalid event data", false
	}
	if e.Event == "HIT" && e.Duration == nil {
		return "Duration is required for HIT events", false
	}
	return "", true
}

// handleEvents validates a batch of usage events. Validation short-circuits
// on the first invalid entry; a valid batch is acknowledged whole.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var events []artifactEvent
	if err := decodeJSON(r, &events); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	for _, ev := range events {
		if msg, ok := ev.validate(); !ok {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
	}

	for _, ev := range events {
		usageEvents.WithLabelValues(strings.ToLower(ev.Source), strings.ToLower(ev.Event)).Inc()
	}

	batchID := uuid.NewString()
	if s.bus != nil {
		payload := map[string]any{
			"batch_id": batchID,
			"team":     teamFrom(r.Context()),
			"events":   events,
		}
		if err := s.bus.Publish(s.config.EventsSubject, payload); err != nil {
			s.logger.Printf("WARN publish usage events: %v", err)
		}
	}

	s.logger.Printf("INFO recorded %d cache usage events (batch %s)", len(events), batchID)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
