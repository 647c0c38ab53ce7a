package get_menu_item

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/menu"
)

const (
	msgInvalidItemID = "некорректный ID позиции меню"
	msgItemNotFound  = "позиция меню не найдена"
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

// Handle GET /api/v1/menu/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Warn("GET /menu/{itemId} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	var studentID *uuid.UUID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		if role, ok := middleware.GetRole(r.Context()); ok && role == domain.RoleStudent {
			studentID = &userID
		}
	}

	result, err := h.service.GetByID(r.Context(), itemID, studentID)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			h.logger.Warn("GET /menu/{itemId} - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /menu/{itemId} - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
