package set_menu_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/service/menu"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidItemID      = "некорректный ID позиции меню"
	msgUnauthorized       = "требуется авторизация"
	msgItemNotFound       = "позиция меню не найдена"
	msgAccessDenied       = "нет доступа к этой позиции меню"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/menu/{itemId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Warn("PATCH /menu/{itemId}/availability - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /menu/{itemId}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetAvailability(r.Context(), itemID, actorID, role, req.IsAvailable); err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			h.logger.Warn("PATCH /menu/{itemId}/availability - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, menu.ErrAccessDenied):
			h.logger.Warn("PATCH /menu/{itemId}/availability - Access denied: item_id=%s, actor_id=%s", itemID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /menu/{itemId}/availability - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /menu/{itemId}/availability - Updated: item_id=%s, available=%t", itemID, req.IsAvailable)
	w.WriteHeader(http.StatusNoContent)
}
