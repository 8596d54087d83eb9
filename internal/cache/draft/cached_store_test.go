package draft

import (
	"context"
	"testing"

	"atelier/internal/brief"
	draftrepo "atelier/internal/gateway/repository/draft"
)

type countingOrigin struct {
	inner    *draftrepo.MemoryStore
	getCalls int
}

func (o *countingOrigin) Get(ctx context.Context, id string) (draftrepo.Draft, bool, error) {
	o.getCalls++
	return o.inner.Get(ctx, id)
}

func (o *countingOrigin) Save(ctx context.Context, d draftrepo.Draft) error {
	return o.inner.Save(ctx, d)
}

func (o *countingOrigin) Delete(ctx context.Context, id string) error {
	return o.inner.Delete(ctx, id)
}

func (o *countingOrigin) ListByUser(ctx context.Context, userID string) ([]draftrepo.Draft, error) {
	return o.inner.ListByUser(ctx, userID)
}

func TestCachedStoreReadThrough(t *testing.T) {
	origin := &countingOrigin{inner: draftrepo.NewMemoryStore()}
	store, err := NewCachedStore(origin, 8)
	if err != nil {
		t.Fatalf("new cached store: %v", err)
	}
	ctx := context.Background()

	d := draftrepo.Draft{ConversationID: "c1", Brief: brief.New("c1")}
	if err := origin.Save(ctx, d); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, ok, err := store.Get(ctx, "c1"); err != nil || !ok {
		t.Fatalf("get1: ok=%v err=%v", ok, err)
	}
	if _, ok, err := store.Get(ctx, "c1"); err != nil || !ok {
		t.Fatalf("get2: ok=%v err=%v", ok, err)
	}
	if origin.getCalls != 1 {
		t.Fatalf("expected one origin get, got %d", origin.getCalls)
	}
}

func TestCachedStoreWriteThroughAndInvalidate(t *testing.T) {
	origin := &countingOrigin{inner: draftrepo.NewMemoryStore()}
	store, err := NewCachedStore(origin, 8)
	if err != nil {
		t.Fatalf("new cached store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, draftrepo.Draft{ConversationID: "c2", UserID: "u1", Brief: brief.New("c2")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, ok, err := store.Get(ctx, "c2")
	if err != nil || !ok {
		t.Fatalf("get after save: ok=%v err=%v", ok, err)
	}
	if got.UserID != "u1" {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if origin.getCalls != 0 {
		t.Fatalf("save should have primed the cache, origin gets = %d", origin.getCalls)
	}

	if err := store.Delete(ctx, "c2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "c2"); ok {
		t.Fatal("draft still present after delete")
	}
}

func TestCachedStoreReturnsCopies(t *testing.T) {
	origin := &countingOrigin{inner: draftrepo.NewMemoryStore()}
	store, _ := NewCachedStore(origin, 8)
	ctx := context.Background()

	b := brief.New("c3")
	if err := store.Save(ctx, draftrepo.Draft{ConversationID: "c3", Brief: b}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	first, _, _ := store.Get(ctx, "c3")
	first.Brief.Platform = brief.Confirmed(brief.PlatformPrint)

	second, _, _ := store.Get(ctx, "c3")
	if second.Brief.Platform.Filled() {
		t.Fatal("mutating a returned draft leaked into the cache")
	}
}
