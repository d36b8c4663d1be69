package relay

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/example/maternal/pkg/models"
)

// Handler accepts tracking uploads and appends them to the workbook. The
// body may be a single event object or an array of events; clients fire and
// forget, so the response carries only a status.
func Handler(workbook *Workbook) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /", func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		events, err := parseEvents(raw)
		if err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := workbook.Append(events); err != nil {
			log.Printf("relay: failed to append %d events: %v", len(events), err)
			http.Error(w, "failed to record events", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	})

	return mux
}

// parseEvents accepts both a bare event and an array of events
func parseEvents(raw []byte) ([]models.TrackingEvent, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []models.TrackingEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var event models.TrackingEvent
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return nil, err
	}
	return []models.TrackingEvent{event}, nil
}
