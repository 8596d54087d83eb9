package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atelier/internal/brief"
	collectionrepo "atelier/internal/gateway/repository/collection"
	draftrepo "atelier/internal/gateway/repository/draft"
)

// Moodboard returns the conversation's collection, creating nothing.
func (s *Service) Moodboard(ctx context.Context, conversationID string) (collectionrepo.Collection, error) {
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return collectionrepo.Collection{}, err
	}
	if !ok {
		return collectionrepo.Collection{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}
	if d.CollectionID == "" {
		return collectionrepo.Collection{ConversationID: d.ConversationID, UserID: d.UserID}, nil
	}
	col, ok, err := s.collections.Get(ctx, d.CollectionID)
	if err != nil {
		return collectionrepo.Collection{}, err
	}
	if !ok {
		return collectionrepo.Collection{ConversationID: d.ConversationID, UserID: d.UserID}, nil
	}
	return col, nil
}

// AddMoodboardItem appends an item to the conversation's collection and
// mirrors the style and color picks into the brief's visual direction.
func (s *Service) AddMoodboardItem(ctx context.Context, conversationID string, item collectionrepo.Item) (collectionrepo.Collection, error) {
	if err := validateItem(item); err != nil {
		return collectionrepo.Collection{}, err
	}
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return collectionrepo.Collection{}, err
	}
	if !ok {
		return collectionrepo.Collection{}, fmt.Errorf("conversation %s not found", strings.TrimSpace(conversationID))
	}

	now := time.Now().UTC()
	var col collectionrepo.Collection
	if d.CollectionID != "" {
		col, _, err = s.collections.Get(ctx, d.CollectionID)
		if err != nil {
			return collectionrepo.Collection{}, err
		}
	}
	if col.ID == "" {
		col = collectionrepo.Collection{
			ID:             "col-" + d.ConversationID,
			ConversationID: d.ConversationID,
			UserID:         d.UserID,
			CreatedAt:      now,
		}
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", now.UnixNano())
	}
	item.AddedAt = now
	col.Items = append(col.Items, item)
	col.UpdatedAt = now
	if err := s.collections.Save(ctx, col); err != nil {
		return collectionrepo.Collection{}, fmt.Errorf("save collection: %w", err)
	}

	d.CollectionID = col.ID
	s.syncVisualDirection(&d, col)
	progress := s.progressFor(ctx, &d, false)
	d.CompletedStages = progress.Completed
	d.UpdatedAt = now
	if err := s.drafts.Save(ctx, d); err != nil {
		return collectionrepo.Collection{}, fmt.Errorf("save draft: %w", err)
	}

	s.publish(d.ConversationID, Event{Type: "brief", ConversationID: d.ConversationID, Brief: d.Brief})
	s.publish(d.ConversationID, Event{Type: "stage", ConversationID: d.ConversationID, Progress: &progress})
	return col, nil
}

// RemoveMoodboardItem deletes an item. Stage progress keeps its high-water
// mark even when the board goes back to empty.
func (s *Service) RemoveMoodboardItem(ctx context.Context, conversationID, itemID string) (collectionrepo.Collection, error) {
	d, ok, err := s.drafts.Get(ctx, conversationID)
	if err != nil {
		return collectionrepo.Collection{}, err
	}
	if !ok || d.CollectionID == "" {
		return collectionrepo.Collection{}, fmt.Errorf("conversation %s has no moodboard", strings.TrimSpace(conversationID))
	}
	col, ok, err := s.collections.Get(ctx, d.CollectionID)
	if err != nil {
		return collectionrepo.Collection{}, err
	}
	if !ok {
		return collectionrepo.Collection{}, fmt.Errorf("collection %s not found", d.CollectionID)
	}

	kept := col.Items[:0]
	found := false
	for _, it := range col.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return collectionrepo.Collection{}, fmt.Errorf("item %s not found", strings.TrimSpace(itemID))
	}
	col.Items = kept
	col.UpdatedAt = time.Now().UTC()
	if err := s.collections.Save(ctx, col); err != nil {
		return collectionrepo.Collection{}, fmt.Errorf("save collection: %w", err)
	}

	s.syncVisualDirection(&d, col)
	progress := s.progressFor(ctx, &d, false)
	d.CompletedStages = progress.Completed
	d.UpdatedAt = col.UpdatedAt
	if err := s.drafts.Save(ctx, d); err != nil {
		return collectionrepo.Collection{}, fmt.Errorf("save draft: %w", err)
	}

	s.publish(d.ConversationID, Event{Type: "brief", ConversationID: d.ConversationID, Brief: d.Brief})
	s.publish(d.ConversationID, Event{Type: "stage", ConversationID: d.ConversationID, Progress: &progress})
	return col, nil
}

// syncVisualDirection mirrors the board's style and color picks into the
// brief so the completion score sees them.
func (s *Service) syncVisualDirection(d *draftrepo.Draft, col collectionrepo.Collection) {
	if d.Brief == nil {
		d.Brief = brief.New(d.ConversationID)
	}
	if d.Brief.VisualDirection == nil {
		d.Brief.VisualDirection = &brief.VisualDirection{}
	}
	d.Brief.VisualDirection.SelectedStyles = col.SelectedStyleIDs()
	d.Brief.VisualDirection.ColorPalette = col.Colors()
	d.Brief.Recompute()
	d.Brief.Touch()
}

func validateItem(item collectionrepo.Item) error {
	switch item.Kind {
	case collectionrepo.ItemStyle:
		if strings.TrimSpace(item.StyleID) == "" {
			return fmt.Errorf("style item requires a styleId")
		}
	case collectionrepo.ItemUpload:
		if strings.TrimSpace(item.URL) == "" {
			return fmt.Errorf("upload item requires a url")
		}
	case collectionrepo.ItemColor:
		if strings.TrimSpace(item.Color) == "" {
			return fmt.Errorf("color item requires a color")
		}
	default:
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
	return nil
}
