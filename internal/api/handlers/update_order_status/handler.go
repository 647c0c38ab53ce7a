package update_order_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/service/orders"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidStatus      = "некорректный статус заказа"
	msgOrderNotFound      = "заказ не найден"
	msgOrderTerminal      = "заказ уже в финальном статусе"
	msgInvalidTransition  = "недопустимый переход статуса"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, &req); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderId}/status - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrOrderTerminal):
			h.logger.Warn("PATCH /orders/{orderId}/status - Order terminal: order_id=%s", orderID)
			handlers.RespondError(w, http.StatusConflict, msgOrderTerminal)

		case errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{orderId}/status - Invalid transition: order_id=%s, status=%s", orderID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{orderId}/status - Invalid status: order_id=%s, status=%s", orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /orders/{orderId}/status - Failed: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderId}/status - Updated: order_id=%s, status=%s", orderID, req.Status)
	w.WriteHeader(http.StatusNoContent)
}
