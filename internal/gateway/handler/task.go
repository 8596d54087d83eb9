package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	taskrepo "atelier/internal/gateway/repository/task"
)

// maxDeliverableBytes bounds one uploaded file.
const maxDeliverableBytes = 32 << 20

func (s *Service) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Service) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Service) HandleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t, err := s.tasks.UpdateStatus(r.Context(), r.PathValue("id"), taskrepo.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type revisionRequest struct {
	Notes string `json:"notes"`
}

func (s *Service) HandleRequestRevision(w http.ResponseWriter, r *http.Request) {
	var req revisionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t, err := s.tasks.RequestRevision(r.Context(), r.PathValue("id"), req.Notes)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleUploadDeliverable accepts a multipart form with a single "file" part.
func (s *Service) HandleUploadDeliverable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDeliverableBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file part is required: %w", err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDeliverableBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(content) > maxDeliverableBytes {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds %d bytes", maxDeliverableBytes))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	t, obj, err := s.tasks.AttachDeliverable(r.Context(), r.PathValue("id"), header.Filename, contentType, content)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"task": t, "deliverable": obj})
}

func (s *Service) HandleDownloadDeliverable(w http.ResponseWriter, r *http.Request) {
	content, obj, err := s.tasks.Deliverable(r.Context(), r.PathValue("id"), r.PathValue("name"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
