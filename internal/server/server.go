package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/example/maternal/internal/baby"
	"github.com/example/maternal/internal/chat"
	"github.com/example/maternal/internal/knowledge"
	"github.com/example/maternal/internal/pregnancy"
	"github.com/example/maternal/internal/tracking"
)

// Server is the HTTP surface of the application. Reading and page visits
// are stateful: starting one returns an id the client uses for subsequent
// scroll and end calls, so the dwell timing and the scroll maximum live
// server-side.
type Server struct {
	catalog   *knowledge.Catalog
	tracker   *tracking.Tracker
	progress  *tracking.Aggregator
	chat      *chat.Manager
	pregnancy *pregnancy.Service
	baby      *baby.Service

	mu       sync.Mutex
	visits   map[string]*tracking.PageVisit
	readings map[string]*tracking.ReadingSession
}

// New creates a server over the given services
func New(catalog *knowledge.Catalog, tracker *tracking.Tracker, progress *tracking.Aggregator, chatManager *chat.Manager, pregnancyService *pregnancy.Service, babyService *baby.Service) *Server {
	return &Server{
		catalog:   catalog,
		tracker:   tracker,
		progress:  progress,
		chat:      chatManager,
		pregnancy: pregnancyService,
		baby:      babyService,
		visits:    make(map[string]*tracking.PageVisit),
		readings:  make(map[string]*tracking.ReadingSession),
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/knowledge", s.handleListArticles)
	mux.HandleFunc("GET /api/knowledge/{articleID}", s.handleGetArticle)
	mux.HandleFunc("GET /api/knowledge/sections/{sectionID}", s.handleGetSection)

	mux.HandleFunc("GET /api/progress", s.handleGetProgress)
	mux.HandleFunc("DELETE /api/progress", s.handleResetProgress)

	mux.HandleFunc("POST /api/track/page", s.handleStartPageVisit)
	mux.HandleFunc("POST /api/track/page/{visitID}/end", s.handleEndPageVisit)
	mux.HandleFunc("POST /api/track/reading", s.handleStartReading)
	mux.HandleFunc("POST /api/track/reading/{sessionID}/scroll", s.handleReadingScroll)
	mux.HandleFunc("POST /api/track/reading/{sessionID}/end", s.handleEndReading)
	mux.HandleFunc("POST /api/track/question", s.handleTrackQuestion)
	mux.HandleFunc("POST /api/track/sync", s.handleSync)

	mux.HandleFunc("GET /api/chat/config", s.handleGetChatConfig)
	mux.HandleFunc("PUT /api/chat/config", s.handleSetChatConfig)
	mux.HandleFunc("DELETE /api/chat/config", s.handleClearChatConfig)
	mux.HandleFunc("GET /api/chat/sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/chat/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/chat/sessions/{sessionID}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/chat/sessions/{sessionID}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/chat/sessions/{sessionID}/messages", s.handleSendMessage)

	mux.HandleFunc("GET /api/pregnancy", s.handleGetPregnancyInfo)
	mux.HandleFunc("PUT /api/pregnancy", s.handleSetPregnancyInfo)
	mux.HandleFunc("DELETE /api/pregnancy", s.handleClearPregnancyInfo)
	mux.HandleFunc("GET /api/pregnancy/status", s.handleGetPregnancyStatus)

	mux.HandleFunc("GET /api/baby/growth", s.handleListGrowthRecords)
	mux.HandleFunc("POST /api/baby/growth", s.handleSaveGrowthRecord)
	mux.HandleFunc("DELETE /api/baby/growth/{recordID}", s.handleDeleteGrowthRecord)
	mux.HandleFunc("GET /api/baby/feeding", s.handleListFeedingRecords)
	mux.HandleFunc("POST /api/baby/feeding", s.handleSaveFeedingRecord)
	mux.HandleFunc("DELETE /api/baby/feeding/{recordID}", s.handleDeleteFeedingRecord)
	mux.HandleFunc("GET /api/baby/diapers", s.handleListDiaperRecords)
	mux.HandleFunc("POST /api/baby/diapers", s.handleSaveDiaperRecord)
	mux.HandleFunc("DELETE /api/baby/diapers/{recordID}", s.handleDeleteDiaperRecord)
	mux.HandleFunc("GET /api/baby/vaccines", s.handleListVaccineRecords)
	mux.HandleFunc("POST /api/baby/vaccines", s.handleSaveVaccineRecord)
	mux.HandleFunc("DELETE /api/baby/vaccines/{recordID}", s.handleDeleteVaccineRecord)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"userId": s.tracker.UserID(),
	})
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON parses the request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
