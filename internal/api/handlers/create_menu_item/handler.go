package create_menu_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/service/menu"
	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры позиции меню"
	msgUnauthorized       = "требуется авторизация"
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

// Handle POST /api/v1/menu
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /menu - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrInvalidInput):
			h.logger.Warn("POST /menu - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /menu - Failed: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /menu - Created: item_id=%s, owner_id=%s", result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
