// Package handler exposes the gateway's JSON HTTP surface.
package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	settingsrepo "atelier/internal/gateway/repository/settings"
	conversationsvc "atelier/internal/gateway/service/conversation"
	tasksvc "atelier/internal/gateway/service/task"
)

// Service holds the wired services behind every endpoint.
type Service struct {
	conversations *conversationsvc.Service
	tasks         *tasksvc.Service
	settings      *settingsrepo.Store
}

func NewService(conversations *conversationsvc.Service, tasks *tasksvc.Service, settings *settingsrepo.Store) *Service {
	return &Service{conversations: conversations, tasks: tasks, settings: settings}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response failed: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// readJSON decodes a request body, rejecting unknown fields so typos fail
// loudly instead of silently dropping data.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// statusFor maps service errors onto HTTP codes by message shape. Services
// return plain errors; the split here is not found vs bad input vs internal.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "unknown"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "limit"),
		strings.Contains(msg, "no value"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
