package approve_owner

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/service/owners"
	"github.com/m04kA/SC-CanteenService/internal/service/owners/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgOwnerNotFound      = "владелец не найден"
	msgNotAnOwner         = "профиль не является владельцем столовой"
	msgAlreadyDecided     = "заявка уже рассмотрена"
)

type Handler struct {
	service OwnerService
	logger  Logger
}

func NewHandler(service OwnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/owners/{ownerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["ownerId"])
	if err != nil {
		h.logger.Warn("PATCH /admin/owners/{ownerId} - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req models.DecideOwnerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/owners/{ownerId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decide(r.Context(), ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, owners.ErrOwnerNotFound):
			h.logger.Warn("PATCH /admin/owners/{ownerId} - Owner not found: owner_id=%s", ownerID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, owners.ErrNotAnOwner):
			h.logger.Warn("PATCH /admin/owners/{ownerId} - Not an owner: owner_id=%s", ownerID)
			handlers.RespondBadRequest(w, msgNotAnOwner)

		case errors.Is(err, owners.ErrAlreadyDecided):
			h.logger.Warn("PATCH /admin/owners/{ownerId} - Already decided: owner_id=%s", ownerID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		default:
			h.logger.Error("PATCH /admin/owners/{ownerId} - Failed: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/owners/{ownerId} - Decided: owner_id=%s, approve=%t", ownerID, req.Approve)
	handlers.RespondJSON(w, http.StatusOK, result)
}
