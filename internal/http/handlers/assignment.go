package handlers

import (
	"errors"
	"net/http"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

// AssignmentHandler serves the restaurant-facing assignment endpoints.
type AssignmentHandler struct {
	usecase assignmentUsecase
	logger  logx.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(logger logx.Logger, uc assignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{usecase: uc, logger: logger}
}

// Accept handles POST /assignments/{id}/accept.
// @Summary Accept an assignment
// @Description Restaurant accepts a pending assignment. applied=false means the
// @Description assignment was already resolved by the competing path.
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body acceptAssignmentRequest true "Accept payload"
// @Success 200 {object} resolutionDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "assignment not found"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /assignments/{id}/accept [post]
func (h *AssignmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req acceptAssignmentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Resolve(r.Context(), id, req.RestaurantID, domain.AssignmentAccepted, "")
	h.writeResolution(w, r, res, err)
}

// Reject handles POST /assignments/{id}/reject.
// @Summary Reject an assignment
// @Description Restaurant rejects a pending assignment with a reason code.
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body rejectAssignmentRequest true "Reject payload"
// @Success 200 {object} resolutionDTO
// @Failure 400 {object} ErrorResponse "invalid rejection reason"
// @Failure 404 {object} ErrorResponse "assignment not found"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /assignments/{id}/reject [post]
func (h *AssignmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req rejectAssignmentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	reason := domain.RejectionReason{Code: req.ReasonCode, Details: req.Details}
	if !reason.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid rejection reason")
		return
	}

	res, err := h.usecase.Resolve(r.Context(), id, req.RestaurantID, domain.AssignmentRejected, reason.Note())
	h.writeResolution(w, r, res, err)
}

// OpenForOrder handles GET /orders/{id}/assignment and returns the single
// pending assignment of an order, if any.
func (h *AssignmentHandler) OpenForOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.usecase.Open(r.Context(), id)
	switch {
	case err != nil:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	case a == nil:
		writeError(h.logger, w, r, http.StatusNotFound, "no open assignment")
	default:
		writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(*a))
	}
}

func (h *AssignmentHandler) writeResolution(w http.ResponseWriter, r *http.Request, res domain.Resolution, err error) {
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, resolutionToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "assignment not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
