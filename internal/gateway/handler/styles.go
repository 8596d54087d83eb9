package handler

import (
	"fmt"
	"net/http"

	"atelier/internal/gateway/repository/styles"
)

func (s *Service) HandleSearchStyles(w http.ResponseWriter, r *http.Request) {
	results := styles.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"styles": results})
}

func (s *Service) HandleGetStyle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	style, ok := styles.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("style %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, style)
}
