package toggle_favorite

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

// Handle POST /api/v1/menu/{itemId}/favorite
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Warn("POST /menu/{itemId}/favorite - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	result, err := h.service.ToggleFavorite(r.Context(), studentID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			h.logger.Warn("POST /menu/{itemId}/favorite - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("POST /menu/{itemId}/favorite - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /menu/{itemId}/favorite - Toggled: item_id=%s, student_id=%s, favorited=%t",
		itemID, studentID, result.IsFavorited)
	handlers.RespondJSON(w, http.StatusOK, result)
}
