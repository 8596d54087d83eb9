package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	conversationsvc "atelier/internal/gateway/service/conversation"

	"github.com/gorilla/websocket"
)

const (
	conversationWSWriteWait = 10 * time.Second
	conversationWSPongWait  = 60 * time.Second
	conversationWSPingEvery = (conversationWSPongWait * 9) / 10
)

var conversationWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type conversationWSInbound struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

type conversationWSOutbound struct {
	Type    string                 `json:"type"`
	Event   *conversationsvc.Event `json:"event,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// HandleConversationWS streams conversation events to the client and accepts
// chat messages over the same socket.
func (s *Service) HandleConversationWS(w http.ResponseWriter, r *http.Request) {
	conversationID := strings.TrimSpace(r.URL.Query().Get("conversation_id"))
	if conversationID == "" {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}
	if _, _, err := s.conversations.Get(r.Context(), conversationID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := conversationWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(conversationWSPongWait)); err != nil {
		log.Printf("conversation ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(conversationWSPongWait))
	})

	writeCh := make(chan conversationWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(conversationWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(conversationWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(conversationWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events, unsubscribe := s.conversations.Subscribe(ctx, conversationID)
	defer unsubscribe()

	pushConversationWS(writeCh, conversationWSOutbound{Type: "subscribed"})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				pushConversationWS(writeCh, conversationWSOutbound{Type: "event", Event: &ev})
			}
		}
	}()

	for {
		var in conversationWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushConversationWS(writeCh, conversationWSOutbound{Type: "pong"})
		case "message":
			if _, _, err := s.conversations.Append(ctx, conversationID, in.Content); err != nil {
				pushConversationWS(writeCh, conversationWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: err.Error(),
				})
			}
			// The resulting events arrive through the subscription.
		default:
			pushConversationWS(writeCh, conversationWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + in.Type,
			})
		}
	}
}

func pushConversationWS(writeCh chan conversationWSOutbound, out conversationWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
