package delete_menu_item

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
	msgInvalidItemID = "некорректный ID позиции меню"
	msgUnauthorized  = "требуется авторизация"
	msgItemNotFound  = "позиция меню не найдена"
	msgAccessDenied  = "нет доступа к этой позиции меню"
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

// Handle DELETE /api/v1/menu/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Warn("DELETE /menu/{itemId} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	if err := h.service.Delete(r.Context(), itemID, actorID, role); err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			h.logger.Warn("DELETE /menu/{itemId} - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, menu.ErrAccessDenied):
			h.logger.Warn("DELETE /menu/{itemId} - Access denied: item_id=%s, actor_id=%s", itemID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /menu/{itemId} - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /menu/{itemId} - Deleted: item_id=%s, actor_id=%s", itemID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
