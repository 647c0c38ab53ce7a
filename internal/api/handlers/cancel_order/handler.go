package cancel_order

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgUnauthorized   = "требуется авторизация"
	msgOrderNotFound  = "заказ не найден"
	msgAccessDenied   = "нет доступа к этому заказу"
	msgOrderTerminal  = "заказ уже в финальном статусе"
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

// Handle PATCH /api/v1/orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		h.logger.Warn("PATCH /orders/{orderId}/cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	if err := h.service.Cancel(r.Context(), orderID, actorID, role); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderId}/cancel - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{orderId}/cancel - Access denied: order_id=%s, actor_id=%s", orderID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, orders.ErrOrderTerminal):
			h.logger.Warn("PATCH /orders/{orderId}/cancel - Order terminal: order_id=%s", orderID)
			handlers.RespondError(w, http.StatusConflict, msgOrderTerminal)

		default:
			h.logger.Error("PATCH /orders/{orderId}/cancel - Failed: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderId}/cancel - Cancelled: order_id=%s, actor_id=%s", orderID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
