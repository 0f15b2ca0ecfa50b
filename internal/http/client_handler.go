package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/appointment-admin/internal/application"
	"github.com/example/appointment-admin/internal/domain"
)

type clientService interface {
	List(ctx context.Context) ([]domain.Client, error)
}

type ClientHandler struct {
	service   clientService
	responder responder
	logger    *slog.Logger
}

func NewClientHandler(service clientService, logger *slog.Logger) *ClientHandler {
	base := defaultLogger(logger)
	return &ClientHandler{service: service, responder: newResponder(base), logger: base}
}

// List returns the most recently registered clients as a bare array.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "ClientHandler", "List")
	clients, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "client list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(clients)).InfoContext(r.Context(), "clients listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, emptyAsSlice(clients))
}
