package server

import (
	"net/http"

	"atelier/internal/gateway/handler"
	"atelier/internal/gateway/middleware"
)

func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()

	// Conversations
	mux.HandleFunc("POST /api/conversations", svc.HandleStartConversation)
	mux.HandleFunc("GET /api/conversations", svc.HandleListConversations)
	mux.HandleFunc("GET /api/conversations/{id}", svc.HandleGetConversation)
	mux.HandleFunc("POST /api/conversations/{id}/messages", svc.HandleSendMessage)
	mux.HandleFunc("GET /api/suggest", svc.HandleSuggest)

	// Brief
	mux.HandleFunc("GET /api/conversations/{id}/brief", svc.HandleGetBrief)
	mux.HandleFunc("POST /api/conversations/{id}/brief/fields/{field}/confirm", svc.HandleConfirmField)
	mux.HandleFunc("PUT /api/conversations/{id}/brief/fields/{field}", svc.HandleEditField)
	mux.HandleFunc("GET /api/conversations/{id}/proposal", svc.HandleProposal)
	mux.HandleFunc("POST /api/conversations/{id}/submit", svc.HandleSubmit)

	// Moodboard
	mux.HandleFunc("GET /api/conversations/{id}/collection", svc.HandleGetMoodboard)
	mux.HandleFunc("POST /api/conversations/{id}/collection/items", svc.HandleAddMoodboardItem)
	mux.HandleFunc("DELETE /api/conversations/{id}/collection/items/{itemId}", svc.HandleRemoveMoodboardItem)

	// Tasks
	mux.HandleFunc("GET /api/tasks", svc.HandleListTasks)
	mux.HandleFunc("GET /api/tasks/{id}", svc.HandleGetTask)
	mux.HandleFunc("POST /api/tasks/{id}/status", svc.HandleUpdateTaskStatus)
	mux.HandleFunc("POST /api/tasks/{id}/revisions", svc.HandleRequestRevision)
	mux.HandleFunc("POST /api/tasks/{id}/deliverables", svc.HandleUploadDeliverable)
	mux.HandleFunc("GET /api/tasks/{id}/deliverables/{name}", svc.HandleDownloadDeliverable)

	// Styles
	mux.HandleFunc("GET /api/styles", svc.HandleSearchStyles)
	mux.HandleFunc("GET /api/styles/{id}", svc.HandleGetStyle)

	// Settings
	mux.HandleFunc("GET /api/settings/{userId}", svc.HandleGetSettings)
	mux.HandleFunc("PUT /api/settings/{userId}", svc.HandleSaveSettings)

	// Streaming
	mux.HandleFunc("GET /ws/conversations", svc.HandleConversationWS)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return middleware.CORS(mux)
}
