package generate_commissions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/service/commissions"
	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMonth       = "некорректный формат месяца, ожидается YYYY-MM"
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

// Handle POST /api/v1/admin/commissions/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/commissions/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.GenerateForMonth(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, commissions.ErrInvalidMonth):
			h.logger.Warn("POST /admin/commissions/generate - Invalid month: %s", req.Month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("POST /admin/commissions/generate - Failed: month=%s, error=%v", req.Month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/commissions/generate - Generated %d records for month=%s", result.Total, req.Month)
	handlers.RespondJSON(w, http.StatusOK, result)
}
