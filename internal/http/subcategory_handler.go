package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-admin/internal/application"
	"github.com/example/appointment-admin/internal/domain"
)

type subCategoryService interface {
	List(ctx context.Context, page int) (application.SubCategoryPage, error)
	Create(ctx context.Context, input application.SubCategoryInput) (domain.SubCategory, error)
	Get(ctx context.Context, id string) (domain.SubCategory, error)
	Update(ctx context.Context, id string, input application.SubCategoryInput) (domain.SubCategory, error)
	Delete(ctx context.Context, id string) error
}

type SubCategoryHandler struct {
	service   subCategoryService
	responder responder
	logger    *slog.Logger
}

func NewSubCategoryHandler(service subCategoryService, logger *slog.Logger) *SubCategoryHandler {
	base := defaultLogger(logger)
	return &SubCategoryHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SubCategoryHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SubCategoryHandler", operation, attrs...)
}

func (h *SubCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := pageParam(r)
	logger := h.log(r.Context(), "List", "page", page)

	result, err := h.service.List(r.Context(), page)
	if err != nil {
		logger.ErrorContext(r.Context(), "subcategory list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, pagedResponse{Data: emptyAsSlice(result.Items), Meta: result.Meta})
}

func (h *SubCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req subCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode subcategory request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	subcategory, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "subcategory creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("subcategory_id", subcategory.ID).InfoContext(r.Context(), "subcategory created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, subCategoryCreatedResponse{
		Message:     "SubCategory Created Successfully!!",
		SubCategory: subcategory,
	})
}

func (h *SubCategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Edit", "subcategory_id", id)
	subcategory, err := h.service.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "subcategory lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, subcategory)
}

func (h *SubCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req subCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "subcategory_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode subcategory update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "subcategory_id", id)
	subcategory, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "subcategory update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "subcategory updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, subcategory)
}

func (h *SubCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "subcategory_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "subcategory delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "subcategory deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "SubCategory Deleted Successfully!!"})
}

type subCategoryRequest struct {
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r subCategoryRequest) toInput() application.SubCategoryInput {
	return application.SubCategoryInput{
		CategoryID:  strings.TrimSpace(r.CategoryID),
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
	}
}

type subCategoryCreatedResponse struct {
	Message     string             `json:"message"`
	SubCategory domain.SubCategory `json:"subcategory"`
}
