package handlers

import (
	"errors"
	"net/http"

	"service-assignment/internal/apperr"
	"service-assignment/internal/logx"
)

// OrderHandler serves the customer-facing order endpoints.
type OrderHandler struct {
	reader  orderReader
	usecase orderUsecase
	logger  logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, reader orderReader, uc orderUsecase) *OrderHandler {
	return &OrderHandler{reader: reader, usecase: uc, logger: logger}
}

// Get handles GET /orders/{id}.
// @Summary Get order
// @Description Returns the order with its derived assignment status.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} orderDTO
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	o, err := h.reader.GetOrder(ctx, id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*o))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// History handles GET /orders/{id}/history.
// @Summary Assignment history
// @Description Returns the append-only assignment audit trail, oldest first.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} historyEntryDTO
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /orders/{id}/history [get]
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.reader.ListHistory(ctx, id)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToResponse(list))
}

// Cancel handles POST /orders/{id}/cancel.
// @Summary Cancel order
// @Description Customer cancellation. Halts the assignment chain and resolves
// @Description any pending assignment.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.usecase.Cancel(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "cancelled"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
