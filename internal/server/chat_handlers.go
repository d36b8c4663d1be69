package server

import (
	"net/http"

	"github.com/example/maternal/pkg/models"
)

// chatConfigView never echoes the stored API key back to the client
type chatConfigView struct {
	Configured bool              `json:"configured"`
	Provider   models.AIProvider `json:"provider,omitempty"`
	Model      string            `json:"model,omitempty"`
}

func (s *Server) handleGetChatConfig(w http.ResponseWriter, r *http.Request) {
	config, ok := s.chat.Config()
	if !ok {
		writeJSON(w, http.StatusOK, chatConfigView{})
		return
	}
	writeJSON(w, http.StatusOK, chatConfigView{
		Configured: true,
		Provider:   config.Provider,
		Model:      config.Model,
	})
}

func (s *Server) handleSetChatConfig(w http.ResponseWriter, r *http.Request) {
	var config models.AIConfig
	if err := decodeJSON(r, &config); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config payload")
		return
	}
	if err := s.chat.SetConfig(config); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearChatConfig(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.ClearConfig(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.chat.Sessions()
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.chat.CreateSession())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.chat.Session(r.PathValue("sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown chat session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.chat.DeleteSession(r.PathValue("sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content        string `json:"content"`
		SectionContext string `json:"sectionContext"`
		SymptomCheck   bool   `json:"symptomCheck"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	session, err := s.chat.SendMessage(r.Context(), r.PathValue("sessionID"), req.Content, req.SectionContext, req.SymptomCheck)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}
