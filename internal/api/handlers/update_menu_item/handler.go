package update_menu_item

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/service/menu"
	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidItemID      = "некорректный ID позиции меню"
	msgInvalidParams      = "некорректные параметры позиции меню"
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

// Handle PUT /api/v1/menu/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Warn("PUT /menu/{itemId} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	var req models.UpdateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /menu/{itemId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), itemID, actorID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			h.logger.Warn("PUT /menu/{itemId} - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, menu.ErrAccessDenied):
			h.logger.Warn("PUT /menu/{itemId} - Access denied: item_id=%s, actor_id=%s", itemID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, menu.ErrInvalidInput):
			h.logger.Warn("PUT /menu/{itemId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("PUT /menu/{itemId} - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /menu/{itemId} - Updated: item_id=%s, actor_id=%s", itemID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
