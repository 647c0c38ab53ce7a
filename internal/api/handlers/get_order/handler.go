package get_order

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

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		h.logger.Warn("GET /orders/{orderId} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.service.GetByID(r.Context(), orderID, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{orderId} - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /orders/{orderId} - Access denied: order_id=%s, actor_id=%s", orderID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /orders/{orderId} - Failed: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
