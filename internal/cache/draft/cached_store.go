// Package draft provides a read-through, write-through cache in front of a
// draft store. The conversation path hits Get on every message, so keeping
// hot drafts in memory saves a round trip per turn.
package draft

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	draftrepo "atelier/internal/gateway/repository/draft"
)

type Store = draftrepo.Store

const defaultMaxEntries = 1024

type CachedStore struct {
	origin Store
	cache  *lru.Cache[string, draftrepo.Draft]
}

func NewCachedStore(origin Store, maxEntries int) (*CachedStore, error) {
	if origin == nil {
		return nil, fmt.Errorf("origin store is required")
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	cache, err := lru.New[string, draftrepo.Draft](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("init draft cache: %w", err)
	}
	return &CachedStore{origin: origin, cache: cache}, nil
}

func (s *CachedStore) Get(ctx context.Context, conversationID string) (draftrepo.Draft, bool, error) {
	key := strings.TrimSpace(conversationID)
	if d, ok := s.cache.Get(key); ok {
		return d.Clone(), true, nil
	}
	d, ok, err := s.origin.Get(ctx, key)
	if err != nil || !ok {
		return draftrepo.Draft{}, ok, err
	}
	s.cache.Add(key, d.Clone())
	return d, true, nil
}

func (s *CachedStore) Save(ctx context.Context, d draftrepo.Draft) error {
	if err := s.origin.Save(ctx, d); err != nil {
		return err
	}
	s.cache.Add(strings.TrimSpace(d.ConversationID), d.Clone())
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, conversationID string) error {
	key := strings.TrimSpace(conversationID)
	if err := s.origin.Delete(ctx, key); err != nil {
		return err
	}
	s.cache.Remove(key)
	return nil
}

// ListByUser always goes to the origin; the cache only indexes by id.
func (s *CachedStore) ListByUser(ctx context.Context, userID string) ([]draftrepo.Draft, error) {
	return s.origin.ListByUser(ctx, userID)
}
