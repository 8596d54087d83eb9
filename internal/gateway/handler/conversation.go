package handler

import (
	"fmt"
	"net/http"
	"strings"

	"atelier/internal/chatflow"
	draftrepo "atelier/internal/gateway/repository/draft"
)

type startConversationRequest struct {
	UserID string `json:"userId"`
}

func (s *Service) HandleStartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.conversations.Start(r.Context(), req.UserID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, conversationResponse(d, chatflow.Advance(chatflow.State{})))
}

func (s *Service) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.conversations.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	out := make([]map[string]any, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, map[string]any{
			"conversationId": d.ConversationID,
			"userId":         d.UserID,
			"messageCount":   len(d.Messages),
			"completion":     completionOf(d),
			"updatedAt":      d.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": out})
}

func (s *Service) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	d, progress, err := s.conversations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, conversationResponse(d, progress))
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (s *Service) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, reply, err := s.conversations.Append(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	_, progress, getErr := s.conversations.Get(r.Context(), d.ConversationID)
	if getErr != nil {
		progress = chatflow.Advance(chatflow.State{MessageCount: len(d.Messages), Completed: d.CompletedStages})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  reply,
		"brief":    d.Brief,
		"progress": progress,
	})
}

// HandleSuggest completes a partly typed message and reports whether the
// text already reads as a go-ahead.
func (s *Service) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"completion": chatflow.SmartCompletion(text),
		"ready":      chatflow.HasReadyIndicator(text),
	})
}

func conversationResponse(d draftrepo.Draft, progress chatflow.Progress) map[string]any {
	return map[string]any{
		"conversationId": d.ConversationID,
		"userId":         d.UserID,
		"messages":       d.Messages,
		"brief":          d.Brief,
		"progress":       progress,
		"collectionId":   d.CollectionID,
		"createdAt":      d.CreatedAt,
		"updatedAt":      d.UpdatedAt,
	}
}

func completionOf(d draftrepo.Draft) int {
	if d.Brief == nil {
		return 0
	}
	return d.Brief.CompletionPercentage
}
