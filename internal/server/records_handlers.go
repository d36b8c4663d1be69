package server

import (
	"net/http"

	"github.com/example/maternal/pkg/models"
)

func (s *Server) handleGetPregnancyInfo(w http.ResponseWriter, r *http.Request) {
	info, found := s.pregnancy.Info()
	if !found {
		writeError(w, http.StatusNotFound, "pregnancy info is not set")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSetPregnancyInfo(w http.ResponseWriter, r *http.Request) {
	var info models.PregnancyInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid pregnancy info payload")
		return
	}
	if err := s.pregnancy.SetInfo(info); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearPregnancyInfo(w http.ResponseWriter, r *http.Request) {
	if err := s.pregnancy.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPregnancyStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.pregnancy.Status()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleListGrowthRecords(w http.ResponseWriter, r *http.Request) {
	records := s.baby.GrowthRecords()
	if records == nil {
		records = []models.BabyRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSaveGrowthRecord(w http.ResponseWriter, r *http.Request) {
	var record models.BabyRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}
	saved, err := s.baby.SaveGrowthRecord(record)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteGrowthRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.baby.DeleteGrowthRecord(r.PathValue("recordID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFeedingRecords(w http.ResponseWriter, r *http.Request) {
	records := s.baby.FeedingRecords()
	if records == nil {
		records = []models.FeedingRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSaveFeedingRecord(w http.ResponseWriter, r *http.Request) {
	var record models.FeedingRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}
	saved, err := s.baby.SaveFeedingRecord(record)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteFeedingRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.baby.DeleteFeedingRecord(r.PathValue("recordID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDiaperRecords(w http.ResponseWriter, r *http.Request) {
	records := s.baby.DiaperRecords()
	if records == nil {
		records = []models.DiaperRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSaveDiaperRecord(w http.ResponseWriter, r *http.Request) {
	var record models.DiaperRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}
	saved, err := s.baby.SaveDiaperRecord(record)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteDiaperRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.baby.DeleteDiaperRecord(r.PathValue("recordID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListVaccineRecords(w http.ResponseWriter, r *http.Request) {
	records := s.baby.VaccineRecords()
	if records == nil {
		records = []models.VaccineRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSaveVaccineRecord(w http.ResponseWriter, r *http.Request) {
	var record models.VaccineRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload")
		return
	}
	saved, err := s.baby.SaveVaccineRecord(record)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteVaccineRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.baby.DeleteVaccineRecord(r.PathValue("recordID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
