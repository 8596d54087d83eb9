package draft

import (
	"context"
	"testing"
	"time"

	"atelier/internal/brief"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := Draft{
		ConversationID: "conv-1",
		UserID:         "user-1",
		Brief:          brief.New("conv-1"),
		Messages:       []Message{{Role: "user", Content: "hello", CreatedAt: time.Now().UTC()}},
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "conv-1")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if got.UserID != "user-1" || len(got.Messages) != 1 {
		t.Fatalf("unexpected draft: %+v", got)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := Draft{ConversationID: "conv-1", Messages: []Message{{Role: "user", Content: "original"}}}
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _, _ := s.Get(ctx, "conv-1")
	got.Messages[0].Content = "mutated"

	again, _, _ := s.Get(ctx, "conv-1")
	if again.Messages[0].Content != "original" {
		t.Fatalf("store leaked internal state: %q", again.Messages[0].Content)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemoryStore()
	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown conversation")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Save(ctx, Draft{ConversationID: "conv-1"})
	if err := s.Delete(ctx, "conv-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "conv-1"); ok {
		t.Fatal("draft survived delete")
	}
}

func TestMemoryStoreListByUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now().UTC()
	_ = s.Save(ctx, Draft{ConversationID: "conv-1", UserID: "alice", UpdatedAt: base})
	_ = s.Save(ctx, Draft{ConversationID: "conv-2", UserID: "bob", UpdatedAt: base.Add(time.Second)})
	_ = s.Save(ctx, Draft{ConversationID: "conv-3", UserID: "alice", UpdatedAt: base.Add(2 * time.Second)})

	mine, err := s.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 drafts for alice, got %d", len(mine))
	}
	if mine[0].ConversationID != "conv-3" {
		t.Fatalf("expected newest first, got %s", mine[0].ConversationID)
	}

	all, err := s.ListByUser(ctx, "")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(all))
	}
}
