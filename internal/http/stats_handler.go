package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-admin/internal/application"
)

type dashboardService interface {
	AppointmentsCount(ctx context.Context, statusFilter string) (int, error)
	UsersCount(ctx context.Context, dateRange string) (int, error)
}

type StatsHandler struct {
	service   dashboardService
	responder responder
	logger    *slog.Logger
}

func NewStatsHandler(service dashboardService, logger *slog.Logger) *StatsHandler {
	base := defaultLogger(logger)
	return &StatsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *StatsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "StatsHandler", operation, attrs...)
}

func (h *StatsHandler) AppointmentsCount(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	logger := h.log(r.Context(), "AppointmentsCount", "status", status)

	count, err := h.service.AppointmentsCount(r.Context(), status)
	if err != nil {
		logger.ErrorContext(r.Context(), "appointment count failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentsCountResponse{TotalAppointmentsCount: count})
}

func (h *StatsHandler) UsersCount(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dateRange := strings.TrimSpace(r.URL.Query().Get("date_range"))
	logger := h.log(r.Context(), "UsersCount", "date_range", dateRange)

	count, err := h.service.UsersCount(r.Context(), dateRange)
	if err != nil {
		logger.ErrorContext(r.Context(), "user count failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, usersCountResponse{TotalUsersCount: count})
}

type appointmentsCountResponse struct {
	TotalAppointmentsCount int `json:"totalAppointmentsCount"`
}

type usersCountResponse struct {
	TotalUsersCount int `json:"totalUsersCount"`
}
