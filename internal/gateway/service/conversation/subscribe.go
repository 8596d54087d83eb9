package conversation

import "context"

// Subscribe registers a listener for a conversation's events. The returned
// cancel func must be called when the listener goes away. Events are dropped
// rather than blocking when a subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, conversationID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	if s.subs[conversationID] == nil {
		s.subs[conversationID] = make(map[int]chan Event)
	}
	s.subs[conversationID][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if m, ok := s.subs[conversationID]; ok {
			if _, ok := m[id]; ok {
				delete(m, id)
				close(ch)
			}
			if len(m) == 0 {
				delete(s.subs, conversationID)
			}
		}
		s.mu.Unlock()
	}

	if ctx != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}
	return ch, cancel
}

func (s *Service) publish(conversationID string, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[conversationID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// NotifySubmitted tells websocket listeners that the brief became a task and
// the conversation is closed.
func (s *Service) NotifySubmitted(conversationID, taskID string) {
	s.publish(conversationID, Event{Type: "submitted", ConversationID: conversationID, TaskID: taskID})
}

// Discard deletes a draft without creating a task.
func (s *Service) Discard(ctx context.Context, conversationID string) error {
	return s.drafts.Delete(ctx, conversationID)
}
