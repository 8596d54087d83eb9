package handler

import (
	"net/http"

	settingsrepo "atelier/internal/gateway/repository/settings"
)

func (s *Service) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	row, err := s.settings.Get(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Service) HandleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var row settingsrepo.Settings
	if err := readJSON(r, &row); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	row.UserID = r.PathValue("userId")
	if err := s.settings.Save(r.Context(), row); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	saved, err := s.settings.Get(r.Context(), row.UserID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
