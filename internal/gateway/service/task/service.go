// Package task owns what happens after a brief is submitted: the task
// record, revision rounds, and deliverable files.
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	deliverablerepo "atelier/internal/gateway/repository/deliverable"
	draftrepo "atelier/internal/gateway/repository/draft"
	taskrepo "atelier/internal/gateway/repository/task"
	"atelier/internal/taskgen"
)

type Service struct {
	tasks        taskrepo.Store
	deliverables deliverablerepo.Store
}

func New(tasks taskrepo.Store, deliverables deliverablerepo.Store) *Service {
	return &Service{tasks: tasks, deliverables: deliverables}
}

// SubmitFromDraft freezes a conversation draft into a task. The proposal is
// recomputed from the transcript here so a stale client cannot submit a
// price it made up.
func (s *Service) SubmitFromDraft(ctx context.Context, d draftrepo.Draft) (taskrepo.Task, error) {
	if s == nil {
		return taskrepo.Task{}, fmt.Errorf("service is nil")
	}
	if len(d.Messages) == 0 {
		return taskrepo.Task{}, fmt.Errorf("conversation %s has no messages to submit", d.ConversationID)
	}

	msgs := make([]taskgen.Message, 0, len(d.Messages))
	for _, m := range d.Messages {
		msgs = append(msgs, taskgen.Message{Role: m.Role, Content: m.Content})
	}
	proposal := taskgen.FromConversation(msgs)

	now := time.Now().UTC()
	t := taskrepo.Task{
		ID:             fmt.Sprintf("task-%d", now.UnixNano()),
		ConversationID: d.ConversationID,
		UserID:         d.UserID,
		Title:          proposal.Title,
		Description:    proposal.Description,
		Category:       proposal.Category,
		Status:         taskrepo.StatusSubmitted,
		Credits:        proposal.CreditsRequired,
		EstimatedHours: proposal.EstimatedHours,
		DeliveryDays:   proposal.DeliveryDays,
		DueDate:        taskgen.DeliveryDateString(proposal.DeliveryDays),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.Brief != nil {
		t.Brief = d.Brief.Snapshot()
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return taskrepo.Task{}, fmt.Errorf("save task: %w", err)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (taskrepo.Task, error) {
	t, ok, err := s.tasks.Get(ctx, id)
	if err != nil {
		return taskrepo.Task{}, err
	}
	if !ok {
		return taskrepo.Task{}, fmt.Errorf("task %s not found", strings.TrimSpace(id))
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]taskrepo.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

// UpdateStatus moves a task along its lifecycle. Only forward moves and the
// delivered/in_revision loop are allowed.
func (s *Service) UpdateStatus(ctx context.Context, id string, next taskrepo.Status) (taskrepo.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return taskrepo.Task{}, err
	}
	if !validTransition(t.Status, next) {
		return taskrepo.Task{}, fmt.Errorf("cannot move task from %s to %s", t.Status, next)
	}
	t.Status = next
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Save(ctx, t); err != nil {
		return taskrepo.Task{}, fmt.Errorf("save task: %w", err)
	}
	return t, nil
}

func validTransition(from, to taskrepo.Status) bool {
	allowed := map[taskrepo.Status][]taskrepo.Status{
		taskrepo.StatusSubmitted:  {taskrepo.StatusInProgress},
		taskrepo.StatusInProgress: {taskrepo.StatusDelivered},
		taskrepo.StatusDelivered:  {taskrepo.StatusInRevision, taskrepo.StatusApproved},
		taskrepo.StatusInRevision: {taskrepo.StatusDelivered},
		taskrepo.StatusApproved:   {taskrepo.StatusPaidOut},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RequestRevision records a change round. Rounds are capped; after that the
// task has to be re-scoped as a new request.
func (s *Service) RequestRevision(ctx context.Context, id, notes string) (taskrepo.Task, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return taskrepo.Task{}, fmt.Errorf("revision notes are required")
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return taskrepo.Task{}, err
	}
	if t.Status != taskrepo.StatusDelivered {
		return taskrepo.Task{}, fmt.Errorf("revisions can only be requested on a delivered task, status is %s", t.Status)
	}
	if len(t.Revisions) >= taskrepo.MaxRevisionRounds {
		return taskrepo.Task{}, fmt.Errorf("revision limit of %d rounds reached", taskrepo.MaxRevisionRounds)
	}
	t.Revisions = append(t.Revisions, taskrepo.Revision{
		Round:       len(t.Revisions) + 1,
		Notes:       notes,
		RequestedAt: time.Now().UTC(),
	})
	t.Status = taskrepo.StatusInRevision
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Save(ctx, t); err != nil {
		return taskrepo.Task{}, fmt.Errorf("save task: %w", err)
	}
	return t, nil
}

// AttachDeliverable stores the file bytes and records the reference on the
// task. Delivering the first file moves an in-progress task to delivered.
func (s *Service) AttachDeliverable(ctx context.Context, id, name, contentType string, content []byte) (taskrepo.Task, deliverablerepo.Object, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return taskrepo.Task{}, deliverablerepo.Object{}, err
	}
	obj, err := s.deliverables.Put(ctx, t.ID, name, contentType, content)
	if err != nil {
		return taskrepo.Task{}, deliverablerepo.Object{}, fmt.Errorf("store deliverable: %w", err)
	}
	ref := taskrepo.DeliverableRef{
		Name:        obj.Name,
		ContentType: obj.ContentType,
		SizeBytes:   obj.SizeBytes,
		UploadedAt:  obj.UploadedAt,
	}
	replaced := false
	for i, existing := range t.Deliverables {
		if existing.Name == ref.Name {
			t.Deliverables[i] = ref
			replaced = true
			break
		}
	}
	if !replaced {
		t.Deliverables = append(t.Deliverables, ref)
	}
	if t.Status == taskrepo.StatusInProgress || t.Status == taskrepo.StatusInRevision {
		t.Status = taskrepo.StatusDelivered
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Save(ctx, t); err != nil {
		return taskrepo.Task{}, deliverablerepo.Object{}, fmt.Errorf("save task: %w", err)
	}
	return t, obj, nil
}

// Deliverable streams a stored file back.
func (s *Service) Deliverable(ctx context.Context, id, name string) ([]byte, deliverablerepo.Object, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, deliverablerepo.Object{}, err
	}
	return s.deliverables.Get(ctx, t.ID, name)
}
