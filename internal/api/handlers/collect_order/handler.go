package collect_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/service/orders"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры выдачи"
	msgUnauthorized       = "требуется авторизация"
	msgOrderNotFound      = "заказ по этому QR коду не найден"
	msgOrderTerminal      = "заказ уже выдан или отменен"
	msgCollectorDenied    = "этот сотрудник не может выдавать заказы"
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

// Handle POST /api/v1/orders/collect
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CollectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders/collect - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Collect(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("POST /orders/collect - Order not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrOrderTerminal):
			h.logger.Warn("POST /orders/collect - Order terminal: staff_id=%s", staffID)
			handlers.RespondError(w, http.StatusConflict, msgOrderTerminal)

		case errors.Is(err, orders.ErrCollectorNotAllowed), errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("POST /orders/collect - Collector not allowed: staff_id=%s", staffID)
			handlers.RespondForbidden(w, msgCollectorDenied)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("POST /orders/collect - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /orders/collect - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/collect - Collected: order_id=%s, status=%s, staff_id=%s",
		result.ID, result.Status, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
