package conversation

import (
	"context"
	"encoding/json"
	"testing"

	"atelier/internal/brief"
	collectionrepo "atelier/internal/gateway/repository/collection"
	draftrepo "atelier/internal/gateway/repository/draft"
)

func newTestService() *Service {
	return New(draftrepo.NewMemoryStore(), collectionrepo.NewMemoryStore(), nil)
}

func TestStartCreatesEmptyDraft(t *testing.T) {
	svc := newTestService()
	d, err := svc.Start(context.Background(), "alice")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if d.ConversationID == "" {
		t.Fatal("expected a conversation id")
	}
	if d.Brief == nil || d.Brief.CompletionPercentage != 0 {
		t.Fatalf("expected a fresh brief, got %+v", d.Brief)
	}
}

func TestAppendUpdatesBriefAndReplies(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")

	got, reply, err := svc.Append(ctx, d.ConversationID, "I need 5 Instagram posts to promote my bakery launch")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(got.Messages))
	}
	if reply.Content == "" {
		t.Fatal("expected a non-empty assistant reply")
	}
	if got.Brief.Platform.Value == nil || *got.Brief.Platform.Value != brief.PlatformInstagram {
		t.Fatalf("platform not inferred: %+v", got.Brief.Platform)
	}
	if got.Brief.CompletionPercentage == 0 {
		t.Fatal("completion should move after an informative message")
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")
	if _, _, err := svc.Append(ctx, d.ConversationID, "   "); err == nil {
		t.Fatal("expected error for blank message")
	}
}

func TestSubscribeSeesMessageEvents(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")

	events, cancel := svc.Subscribe(context.Background(), d.ConversationID)
	defer cancel()

	if _, _, err := svc.Append(ctx, d.ConversationID, "I need a logo for my cafe"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	var types []string
	for i := 0; i < 4; i++ {
		ev := <-events
		types = append(types, ev.Type)
	}
	want := []string{"message", "message", "brief", "stage"}
	for i, w := range want {
		if types[i] != w {
			t.Fatalf("event %d: expected %s, got %v", i, w, types)
		}
	}
}

func TestConfirmAndEditField(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")
	_, _, err := svc.Append(ctx, d.ConversationID, "I need Instagram posts for my shop")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, err := svc.ConfirmField(ctx, d.ConversationID, brief.FieldPlatform)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if got.Brief.Platform.Source != brief.SourceConfirmed {
		t.Fatalf("expected confirmed platform, got %s", got.Brief.Platform.Source)
	}

	raw, _ := json.Marshal(brief.Audience{Description: "Busy parents who shop online"})
	got, err = svc.EditField(ctx, d.ConversationID, brief.FieldAudience, raw)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got.Brief.Audience.Value == nil || got.Brief.Audience.Value.Description != "Busy parents who shop online" {
		t.Fatalf("audience edit not applied: %+v", got.Brief.Audience)
	}
}

func TestMoodboardSyncsVisualDirection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")

	col, err := svc.AddMoodboardItem(ctx, d.ConversationID, collectionrepo.Item{
		Kind:    collectionrepo.ItemStyle,
		StyleID: "minimal",
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(col.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(col.Items))
	}

	got, _, err := svc.Get(ctx, d.ConversationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Brief.VisualDirection.HasSelection() {
		t.Fatal("style pick not mirrored into the brief")
	}

	_, err = svc.AddMoodboardItem(ctx, d.ConversationID, collectionrepo.Item{
		Kind:  collectionrepo.ItemColor,
		Color: "#FF5733",
	})
	if err != nil {
		t.Fatalf("add color failed: %v", err)
	}
	got, _, _ = svc.Get(ctx, d.ConversationID)
	if len(got.Brief.VisualDirection.ColorPalette) != 1 {
		t.Fatalf("color not mirrored: %+v", got.Brief.VisualDirection)
	}
}

func TestStageHighWaterSurvivesItemRemoval(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Start(ctx, "alice")
	_, _, _ = svc.Append(ctx, d.ConversationID, "I need a logo")

	col, err := svc.AddMoodboardItem(ctx, d.ConversationID, collectionrepo.Item{
		Kind:    collectionrepo.ItemStyle,
		StyleID: "minimal",
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	_, before, _ := svc.Get(ctx, d.ConversationID)

	// Board back to empty, but style stays selected on the brief only if the
	// collection still has it; verify percent does not walk backwards anyway.
	if _, err := svc.RemoveMoodboardItem(ctx, d.ConversationID, col.Items[0].ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	_, after, _ := svc.Get(ctx, d.ConversationID)
	if after.Percent < before.Percent {
		t.Fatalf("progress regressed from %d to %d", before.Percent, after.Percent)
	}
	if len(after.Completed) < len(before.Completed) {
		t.Fatalf("completed stages shrank from %v to %v", before.Completed, after.Completed)
	}
}
