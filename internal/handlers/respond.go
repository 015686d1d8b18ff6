package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fruitstand/fruitstand/internal/view"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteErrorPage renders the error template at the given status.
// If the error page itself cannot be rendered, it falls back to a plain
// text response so the client always gets the intended status code.
func WriteErrorPage(w http.ResponseWriter, renderer *view.Renderer, status int, message string, logger *slog.Logger) {
	var buf bytes.Buffer
	err := renderer.Render(&buf, view.ErrorTemplate, map[string]interface{}{
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	})
	if err != nil {
		logger.Error("failed to render error page", "status", status, "error", err)
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to write error page", "status", status, "error", err)
	}
}
