package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/example/maternal/internal/tracking"
)

func (s *Server) handleStartPageVisit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page string `json:"page"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Page == "" {
		writeError(w, http.StatusBadRequest, "page is required")
		return
	}

	id := uuid.NewString()
	visit := tracking.NewPageVisit(s.tracker, req.Page)

	s.mu.Lock()
	s.visits[id] = visit
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"visitId": id})
}

func (s *Server) handleEndPageVisit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("visitID")

	s.mu.Lock()
	visit, ok := s.visits[id]
	delete(s.visits, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "unknown page visit")
		return
	}

	duration := visit.End()
	writeJSON(w, http.StatusOK, map[string]int{"duration": duration})
}

func (s *Server) handleStartReading(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SectionID string `json:"sectionId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.SectionID == "" {
		writeError(w, http.StatusBadRequest, "sectionId is required")
		return
	}

	ref, ok := s.catalog.Section(req.SectionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section")
		return
	}

	id := uuid.NewString()
	session := tracking.NewReadingSession(s.tracker, s.progress, ref.SectionID, ref.Title, ref.EstimatedReadTime)

	s.mu.Lock()
	s.readings[id] = session
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

func (s *Server) handleReadingScroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScrollTop      int `json:"scrollTop"`
		DocumentHeight int `json:"documentHeight"`
		ViewportHeight int `json:"viewportHeight"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scroll payload")
		return
	}

	s.mu.Lock()
	session, ok := s.readings[r.PathValue("sessionID")]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "unknown reading session")
		return
	}

	depth := session.ObserveScroll(req.ScrollTop, req.DocumentHeight, req.ViewportHeight)
	writeJSON(w, http.StatusOK, map[string]int{"scrollDepth": depth})
}

func (s *Server) handleEndReading(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	s.mu.Lock()
	session, ok := s.readings[id]
	delete(s.readings, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "unknown reading session")
		return
	}

	writeJSON(w, http.StatusOK, session.End())
}

func (s *Server) handleTrackQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	s.tracker.TrackQuestion(req.Question, req.Context)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	s.tracker.SyncNow()
	w.WriteHeader(http.StatusAccepted)
}
