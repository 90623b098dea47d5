package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"ptz-simulator/internal/export"
	"ptz-simulator/internal/platform/middleware"
	"ptz-simulator/internal/submission"
	dErrors "ptz-simulator/pkg/domain-errors"
)

// SubmissionService defines the interface for submission operations.
type SubmissionService interface {
	Create(ctx context.Context, req submission.CreateRequest) (*submission.CreateResult, error)
	List(ctx context.Context) ([]submission.Submission, error)
	Delete(ctx context.Context, keys []string) (int, error)
	Replace(ctx context.Context, subs []submission.Submission) error
}

// SubmissionHandler handles the public submit endpoint and the admin
// list/delete/replace/export surface.
type SubmissionHandler struct {
	logger  *slog.Logger
	service SubmissionService
}

func NewSubmissionHandler(service SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{logger: logger, service: service}
}

// handleCreate computes and stores one simulation.
func (h *SubmissionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req submission.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submission payload",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "corps de requête invalide"))
		return
	}

	result, err := h.service.Create(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "submission rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create submission",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to create submission"))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleList returns the canonical merged list (admin only).
func (h *SubmissionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list submissions",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

type deleteRequest struct {
	Keys []string `json:"keys"`
}

// handleDelete removes submissions by identity key (admin only).
func (h *SubmissionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "corps de requête invalide"))
		return
	}

	deleted, err := h.service.Delete(ctx, req.Keys)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete submissions",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

type replaceRequest struct {
	Submissions []submission.Submission `json:"submissions"`
}

// handleReplace swaps the whole stored collection (admin only).
func (h *SubmissionHandler) handleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req replaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "corps de requête invalide"))
		return
	}

	if err := h.service.Replace(ctx, req.Submissions); err != nil {
		h.logger.ErrorContext(ctx, "failed to replace submissions",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport streams the canonical list as CSV (admin only).
func (h *SubmissionHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export submissions",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		WriteError(w, err)
		return
	}

	data, err := export.CSV(subs)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render csv",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to render csv"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
