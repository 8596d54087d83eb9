package draft

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"atelier/internal/brief"
)

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")
	ctx := context.Background()

	first := NewFileStore(path)
	d := Draft{
		ConversationID: "conv-1",
		UserID:         "alice",
		Brief:          brief.New("conv-1"),
		Messages:       []Message{{Role: "user", Content: "I need a logo"}},
		UpdatedAt:      time.Now().UTC(),
	}
	if err := first.Save(ctx, d); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := NewFileStore(path)
	got, ok, err := second.Get(ctx, "conv-1")
	if err != nil || !ok {
		t.Fatalf("reload failed: ok=%v err=%v", ok, err)
	}
	if got.UserID != "alice" || len(got.Messages) != 1 {
		t.Fatalf("unexpected reloaded draft: %+v", got)
	}
	if got.Brief == nil || got.Brief.ID != "conv-1" {
		t.Fatalf("brief not preserved: %+v", got.Brief)
	}
}

func TestFileStoreDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")
	ctx := context.Background()

	first := NewFileStore(path)
	_ = first.Save(ctx, Draft{ConversationID: "conv-1"})
	_ = first.Save(ctx, Draft{ConversationID: "conv-2"})
	if err := first.Delete(ctx, "conv-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	second := NewFileStore(path)
	if _, ok, _ := second.Get(ctx, "conv-1"); ok {
		t.Fatal("deleted draft came back after reload")
	}
	if _, ok, _ := second.Get(ctx, "conv-2"); !ok {
		t.Fatal("surviving draft lost after reload")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, ok, err := s.Get(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("unexpected error on empty store: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty store")
	}
}
