package handler

import (
	"net/http"

	collectionrepo "atelier/internal/gateway/repository/collection"
)

func (s *Service) HandleGetMoodboard(w http.ResponseWriter, r *http.Request) {
	col, err := s.conversations.Moodboard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

func (s *Service) HandleAddMoodboardItem(w http.ResponseWriter, r *http.Request) {
	var item collectionrepo.Item
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	col, err := s.conversations.AddMoodboardItem(r.Context(), r.PathValue("id"), item)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, col)
}

func (s *Service) HandleRemoveMoodboardItem(w http.ResponseWriter, r *http.Request) {
	col, err := s.conversations.RemoveMoodboardItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}
