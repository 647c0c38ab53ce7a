package get_menu

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/domain"
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

// Handle GET /api/v1/menu
// Флаги избранного накладываются только для студентов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var studentID *uuid.UUID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		if role, ok := middleware.GetRole(r.Context()); ok && role == domain.RoleStudent {
			studentID = &userID
		}
	}

	result, err := h.service.List(r.Context(), studentID)
	if err != nil {
		h.logger.Error("GET /menu - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
