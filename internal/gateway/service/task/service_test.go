package task

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"atelier/internal/brief"
	deliverablerepo "atelier/internal/gateway/repository/deliverable"
	draftrepo "atelier/internal/gateway/repository/draft"
	taskrepo "atelier/internal/gateway/repository/task"
	"atelier/internal/taskgen"
)

func newTestService() *Service {
	return New(taskrepo.NewMemoryStore(), deliverablerepo.NewMemoryStore())
}

func draftWith(messages ...string) draftrepo.Draft {
	d := draftrepo.Draft{
		ConversationID: "conv-1",
		UserID:         "alice",
		Brief:          brief.New("conv-1"),
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	for _, m := range messages {
		d.Messages = append(d.Messages, draftrepo.Message{Role: taskgen.RoleUser, Content: m, CreatedAt: time.Now().UTC()})
		brief.ApplyMessage(d.Brief, m)
	}
	return d
}

func TestSubmitFromDraft(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d := draftWith("I need 5 Instagram posts for my new SaaS launch, it's urgent")
	got, err := svc.SubmitFromDraft(ctx, d)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got.Status != taskrepo.StatusSubmitted {
		t.Fatalf("expected submitted status, got %s", got.Status)
	}
	if got.Credits != 34 {
		t.Fatalf("expected 34 credits, got %d", got.Credits)
	}
	if got.ConversationID != "conv-1" || got.UserID != "alice" {
		t.Fatalf("ownership lost: %+v", got)
	}
	if got.DueDate == "" {
		t.Fatal("expected a due date")
	}

	reloaded, err := svc.Get(ctx, got.ID)
	if err != nil {
		t.Fatalf("get after submit failed: %v", err)
	}
	if reloaded.Title != got.Title {
		t.Fatalf("task not persisted: %+v", reloaded)
	}
}

func TestSubmitRejectsEmptyConversation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.SubmitFromDraft(context.Background(), draftrepo.Draft{ConversationID: "conv-1"}); err == nil {
		t.Fatal("expected error for empty conversation")
	}
}

func TestStatusLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.SubmitFromDraft(ctx, draftWith("I need a logo"))

	steps := []taskrepo.Status{
		taskrepo.StatusInProgress,
		taskrepo.StatusDelivered,
		taskrepo.StatusApproved,
		taskrepo.StatusPaidOut,
	}
	cur := created
	for _, next := range steps {
		var err error
		cur, err = svc.UpdateStatus(ctx, cur.ID, next)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	if _, err := svc.UpdateStatus(ctx, cur.ID, taskrepo.StatusInProgress); err == nil {
		t.Fatal("expected error moving a paid out task backwards")
	}
}

func TestStatusRejectsSkippingAhead(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.SubmitFromDraft(ctx, draftWith("I need a logo"))
	if _, err := svc.UpdateStatus(ctx, created.ID, taskrepo.StatusPaidOut); err == nil {
		t.Fatal("expected error jumping from submitted to paid out")
	}
}

func TestRevisionRoundsCapped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.SubmitFromDraft(ctx, draftWith("I need a logo"))
	cur, _ := svc.UpdateStatus(ctx, created.ID, taskrepo.StatusInProgress)
	cur, _ = svc.UpdateStatus(ctx, cur.ID, taskrepo.StatusDelivered)

	for round := 1; round <= taskrepo.MaxRevisionRounds; round++ {
		got, err := svc.RequestRevision(ctx, cur.ID, fmt.Sprintf("round %d notes", round))
		if err != nil {
			t.Fatalf("revision %d failed: %v", round, err)
		}
		if got.Status != taskrepo.StatusInRevision {
			t.Fatalf("expected in_revision, got %s", got.Status)
		}
		if got.Revisions[len(got.Revisions)-1].Round != round {
			t.Fatalf("round numbering off: %+v", got.Revisions)
		}
		cur, err = svc.UpdateStatus(ctx, got.ID, taskrepo.StatusDelivered)
		if err != nil {
			t.Fatalf("redeliver after round %d failed: %v", round, err)
		}
	}

	if _, err := svc.RequestRevision(ctx, cur.ID, "one too many"); err == nil {
		t.Fatalf("expected revision cap after %d rounds", taskrepo.MaxRevisionRounds)
	}
}

func TestRevisionRequiresDeliveredTask(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.SubmitFromDraft(ctx, draftWith("I need a logo"))
	if _, err := svc.RequestRevision(ctx, created.ID, "please change the font"); err == nil {
		t.Fatal("expected error requesting revision before delivery")
	}
}

func TestAttachDeliverable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.SubmitFromDraft(ctx, draftWith("I need a logo"))
	cur, _ := svc.UpdateStatus(ctx, created.ID, taskrepo.StatusInProgress)

	content := []byte("fake png bytes")
	got, obj, err := svc.AttachDeliverable(ctx, cur.ID, "logo-final.png", "image/png", content)
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if got.Status != taskrepo.StatusDelivered {
		t.Fatalf("expected delivered after upload, got %s", got.Status)
	}
	if len(got.Deliverables) != 1 || got.Deliverables[0].Name != "logo-final.png" {
		t.Fatalf("reference not recorded: %+v", got.Deliverables)
	}
	if obj.SizeBytes != int64(len(content)) {
		t.Fatalf("size mismatch: %d", obj.SizeBytes)
	}

	back, backObj, err := svc.Deliverable(ctx, got.ID, "logo-final.png")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if string(back) != string(content) || backObj.ContentType != "image/png" {
		t.Fatalf("content round trip failed: %q %q", back, backObj.ContentType)
	}

	// Re-uploading the same name replaces the reference instead of stacking.
	got, _, err = svc.AttachDeliverable(ctx, got.ID, "logo-final.png", "image/png", []byte("v2"))
	if err != nil {
		t.Fatalf("re-attach failed: %v", err)
	}
	if len(got.Deliverables) != 1 {
		t.Fatalf("expected deduplicated reference, got %d", len(got.Deliverables))
	}
}

func TestListByUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d1 := draftWith("I need a logo")
	if _, err := svc.SubmitFromDraft(ctx, d1); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	d2 := draftWith("I need banner ads")
	d2.ConversationID = "conv-2"
	d2.UserID = "bob"
	if _, err := svc.SubmitFromDraft(ctx, d2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	mine, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || !strings.HasPrefix(mine[0].ID, "task-") {
		t.Fatalf("unexpected list: %+v", mine)
	}
}
