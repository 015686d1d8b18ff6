package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fruitstand/fruitstand/internal/repository"
	"github.com/fruitstand/fruitstand/internal/service"
	"github.com/fruitstand/fruitstand/internal/view"
	"github.com/go-chi/chi/v5"
)

// FruitHandler handles fruit catalog HTTP requests
type FruitHandler struct {
	service  *service.FruitService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewFruitHandler creates a new fruit handler
func NewFruitHandler(service *service.FruitService, renderer *view.Renderer, logger *slog.Logger) *FruitHandler {
	return &FruitHandler{
		service:  service,
		renderer: renderer,
		logger:   logger,
	}
}

// ListFruits handles GET /fruits
// Renders every catalog entry's name and color, in store order
func (h *FruitHandler) ListFruits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fruits, err := h.service.ListFruits(ctx)
	if err != nil {
		h.logger.Error("failed to list fruits", "error", err)
		h.writeErrorPage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.renderPage(w, view.IndexTemplate, map[string]interface{}{
		"Fruits": fruits,
	})
}

// GetFruit handles GET /fruits/{index}
// The path parameter addresses a catalog entry by position:
// - 200: successful render
// - 400: index is not a valid integer
// - 404: index does not map to an existing entry
func (h *FruitHandler) GetFruit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	param := chi.URLParam(r, "index")

	index, err := strconv.Atoi(param)
	if err != nil {
		h.logger.Warn("invalid fruit index format", "index", param, "error", err)
		h.writeErrorPage(w, http.StatusBadRequest, "Invalid index supplied")
		return
	}

	fruit, err := h.service.GetFruit(ctx, index)
	if err != nil {
		if errors.Is(err, repository.ErrFruitNotFound) {
			h.logger.Info("fruit not found", "index", index)
			h.writeErrorPage(w, http.StatusNotFound, "Fruit not found")
			return
		}

		h.logger.Error("failed to get fruit", "index", index, "error", err)
		h.writeErrorPage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.renderPage(w, view.ShowTemplate, map[string]interface{}{
		"Fruit": fruit,
	})
}

// renderPage renders a template into a buffer before touching the response,
// so a render failure surfaces as a clean 500 instead of a half-written page.
func (h *FruitHandler) renderPage(w http.ResponseWriter, name string, data map[string]interface{}) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write response", "template", name, "error", err)
	}
}

func (h *FruitHandler) writeErrorPage(w http.ResponseWriter, status int, message string) {
	WriteErrorPage(w, h.renderer, status, message, h.logger)
}
