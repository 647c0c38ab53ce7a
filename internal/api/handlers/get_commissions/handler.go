package get_commissions

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgUnauthorized   = "требуется авторизация"
)

type Handler struct {
	service CommissionService
	logger  Logger
}

func NewHandler(service CommissionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/commissions
// Владелец видит только собственные комиссии, админ - все
// или комиссии конкретного владельца через параметр ownerId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	var result *models.CommissionListResponse
	var err error

	switch {
	case role == domain.RoleOwner:
		result, err = h.service.ListByOwner(r.Context(), actorID)

	case r.URL.Query().Get("ownerId") != "":
		ownerID, parseErr := uuid.Parse(r.URL.Query().Get("ownerId"))
		if parseErr != nil {
			h.logger.Warn("GET /admin/commissions - Invalid owner ID: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		result, err = h.service.ListByOwner(r.Context(), ownerID)

	default:
		result, err = h.service.List(r.Context())
	}

	if err != nil {
		h.logger.Error("GET /admin/commissions - Failed: actor_id=%s, error=%v", actorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
