package handler

import (
	"encoding/json"
	"net/http"

	"atelier/internal/brief"
)

func (s *Service) HandleGetBrief(w http.ResponseWriter, r *http.Request) {
	d, _, err := s.conversations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d.Brief)
}

func (s *Service) HandleConfirmField(w http.ResponseWriter, r *http.Request) {
	name, err := brief.ParseFieldName(r.PathValue("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.conversations.ConfirmField(r.Context(), r.PathValue("id"), name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d.Brief)
}

type editFieldRequest struct {
	Value json.RawMessage `json:"value"`
}

func (s *Service) HandleEditField(w http.ResponseWriter, r *http.Request) {
	name, err := brief.ParseFieldName(r.PathValue("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req editFieldRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.conversations.EditField(r.Context(), r.PathValue("id"), name, req.Value)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d.Brief)
}

func (s *Service) HandleProposal(w http.ResponseWriter, r *http.Request) {
	proposal, err := s.conversations.Proposal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// HandleSubmit freezes the draft into a task and closes the conversation.
func (s *Service) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, _, err := s.conversations.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	t, err := s.tasks.SubmitFromDraft(r.Context(), d)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.conversations.Discard(r.Context(), id); err != nil {
		// The task exists; losing the draft cleanup is not worth failing over.
		writeJSON(w, http.StatusCreated, t)
		return
	}
	s.conversations.NotifySubmitted(id, t.ID)
	writeJSON(w, http.StatusCreated, t)
}
