package get_pending_owners

import (
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
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

// Handle GET /api/v1/admin/owners/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPending(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/owners/pending - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
