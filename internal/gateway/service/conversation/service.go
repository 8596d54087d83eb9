// Package conversation orchestrates the intake flow: messages come in,
// the live brief is updated, an assistant reply goes out, and stage
// progress is recalculated. Subscribers see every change as an event.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"atelier/internal/brief"
	"atelier/internal/chatflow"
	collectionrepo "atelier/internal/gateway/repository/collection"
	draftrepo "atelier/internal/gateway/repository/draft"
	"atelier/internal/llm"
	"atelier/internal/taskgen"
)

// Event is pushed to websocket subscribers whenever a conversation changes.
type Event struct {
	Type           string             `json:"type"` // message | brief | stage | submitted
	ConversationID string             `json:"conversationId"`
	Message        *draftrepo.Message `json:"message,omitempty"`
	Brief          *brief.LiveBrief   `json:"brief,omitempty"`
	Progress       *chatflow.Progress `json:"progress,omitempty"`
	TaskID         string             `json:"taskId,omitempty"`
}

type Service struct {
	drafts      draftrepo.Store
	collections collectionrepo.Store
	responder   llm.Responder

	mu   sync.Mutex
	subs map[string]map[int]chan Event
	next int
}

func New(drafts draftrepo.Store, collections collectionrepo.Store, responder llm.Responder) *Service {
	if responder == nil {
		responder = llm.HeuristicResponder{}
	}
	return &Service{
		drafts:      drafts,
		collections: collections,
		responder:   responder,
		subs:        make(map[string]map[int]chan Event),
	}
}

func newConversationID() string {
	return fmt.Sprintf("conv-%d", time.Now().UnixNano())
}

// Start creates an empty draft for a new conversation.
func (s *Service) Start(ctx context.Context, userID string) (draftrepo.Draft, error) {
	if s == nil {
		return draftrepo.Draft{}, fmt.Errorf("service is nil")
	}
	now := time.Now().UTC()
	id := newConversationID()
	d := draftrepo.Draft{
		ConversationID: id,
		UserID:         strings.TrimSpace(userID),
		Brief:          brief.New(id),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return draftrepo.Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return d, nil
}

// Get returns the draft plus its current stage progress.
func (s *Service) Get(ctx context.Context, conversationID string) (draftrepo.Draft, chatflow.Progress, error) {
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return draftrepo.Draft{}, chatflow.Progress{}, err
	}
	if !ok {
		return draftrepo.Draft{}, chatflow.Progress{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}
	progress := s.progressFor(ctx, &d, false)
	return d, progress, nil
}

// List returns the user's open drafts.
func (s *Service) List(ctx context.Context, userID string) ([]draftrepo.Draft, error) {
	return s.drafts.ListByUser(ctx, userID)
}

// Append records a user message, updates the brief, produces the assistant
// reply and advances the stage high-water mark.
func (s *Service) Append(ctx context.Context, conversationID, content string) (draftrepo.Draft, draftrepo.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return draftrepo.Draft{}, draftrepo.Message{}, fmt.Errorf("message content is required")
	}
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return draftrepo.Draft{}, draftrepo.Message{}, err
	}
	if !ok {
		return draftrepo.Draft{}, draftrepo.Message{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}
	if d.Brief == nil {
		d.Brief = brief.New(d.ConversationID)
	}

	now := time.Now().UTC()
	userMsg := draftrepo.Message{Role: taskgen.RoleUser, Content: content, CreatedAt: now}
	d.Messages = append(d.Messages, userMsg)

	brief.ApplyMessage(d.Brief, content)

	var question *brief.Question
	if q, ok := brief.NextQuestion(d.Brief); ok {
		question = &q
		d.Brief.MarkQuestionAsked(q.ID)
	}

	turn := llm.Turn{
		Messages:   toTaskgenMessages(d.Messages),
		Brief:      d.Brief,
		Question:   question,
		Completion: d.Brief.CompletionPercentage,
		Ready:      d.Brief.IsReadyForDesigner,
	}
	reply, err := s.responder.Reply(ctx, turn)
	if err != nil || strings.TrimSpace(reply) == "" {
		reply, _ = llm.HeuristicResponder{}.Reply(ctx, turn)
	}
	assistantMsg := draftrepo.Message{Role: taskgen.RoleAssistant, Content: reply, CreatedAt: time.Now().UTC()}
	d.Messages = append(d.Messages, assistantMsg)

	progress := s.progressFor(ctx, &d, false)
	d.CompletedStages = progress.Completed
	d.UpdatedAt = time.Now().UTC()

	if err := s.drafts.Save(ctx, d); err != nil {
		return draftrepo.Draft{}, draftrepo.Message{}, fmt.Errorf("save draft: %w", err)
	}

	s.publish(d.ConversationID, Event{Type: "message", ConversationID: d.ConversationID, Message: &userMsg})
	s.publish(d.ConversationID, Event{Type: "message", ConversationID: d.ConversationID, Message: &assistantMsg})
	s.publish(d.ConversationID, Event{Type: "brief", ConversationID: d.ConversationID, Brief: d.Brief})
	s.publish(d.ConversationID, Event{Type: "stage", ConversationID: d.ConversationID, Progress: &progress})

	return d, assistantMsg, nil
}

// ConfirmField marks an inferred brief field as user-approved.
func (s *Service) ConfirmField(ctx context.Context, conversationID string, name brief.FieldName) (draftrepo.Draft, error) {
	return s.mutateBrief(ctx, conversationID, func(b *brief.LiveBrief) error {
		return b.Confirm(name)
	})
}

// EditField replaces a brief field with a user-supplied value.
func (s *Service) EditField(ctx context.Context, conversationID string, name brief.FieldName, raw []byte) (draftrepo.Draft, error) {
	return s.mutateBrief(ctx, conversationID, func(b *brief.LiveBrief) error {
		return b.Edit(name, raw)
	})
}

func (s *Service) mutateBrief(ctx context.Context, conversationID string, fn func(*brief.LiveBrief) error) (draftrepo.Draft, error) {
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return draftrepo.Draft{}, err
	}
	if !ok {
		return draftrepo.Draft{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}
	if d.Brief == nil {
		d.Brief = brief.New(d.ConversationID)
	}
	if err := fn(d.Brief); err != nil {
		return draftrepo.Draft{}, err
	}
	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, d); err != nil {
		return draftrepo.Draft{}, fmt.Errorf("save draft: %w", err)
	}
	s.publish(d.ConversationID, Event{Type: "brief", ConversationID: d.ConversationID, Brief: d.Brief})
	return d, nil
}

// Proposal derives the priced task proposal from the conversation so far.
func (s *Service) Proposal(ctx context.Context, conversationID string) (taskgen.Proposal, error) {
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return taskgen.Proposal{}, err
	}
	if !ok {
		return taskgen.Proposal{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}
	return taskgen.FromConversation(toTaskgenMessages(d.Messages)), nil
}

// progressFor computes stage progress, folding in moodboard counts.
func (s *Service) progressFor(ctx context.Context, d *draftrepo.Draft, submitted bool) chatflow.Progress {
	state := chatflow.State{
		MessageCount: len(d.Messages),
		Submitted:    submitted,
		Completed:    d.CompletedStages,
	}
	if d.Brief != nil && d.Brief.VisualDirection != nil {
		state.SelectedStyles = len(d.Brief.VisualDirection.SelectedStyles)
	}
	if d.CollectionID != "" && s.collections != nil {
		if col, ok, err := s.collections.Get(ctx, d.CollectionID); err == nil && ok {
			state.MoodboardItems = len(col.Items)
		}
	}
	// A proposal exists as soon as the brief clears the readiness gate.
	if d.Brief != nil && d.Brief.IsReadyForDesigner {
		state.HasProposal = true
	}
	return chatflow.Advance(state)
}

func toTaskgenMessages(msgs []draftrepo.Message) []taskgen.Message {
	out := make([]taskgen.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, taskgen.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
