package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SC-CanteenService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры: ожидается itemId (uuid) и startTime (RFC3339)"
	msgItemNotFound       = "позиция меню не найдена"
	msgItemNotBookable    = "позиция меню не бронируется по слотам"
	msgUnknownSlot        = "слот не принадлежит этому экрану"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrItemNotFound):
			h.logger.Warn("POST /availability/check - Item not found: item_id=%s", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkAvailability.ErrItemNotBookable):
			h.logger.Warn("POST /availability/check - Item not bookable: item_id=%s", req.ItemID)
			handlers.RespondBadRequest(w, msgItemNotBookable)

		case errors.Is(err, checkAvailability.ErrUnknownSlot):
			h.logger.Warn("POST /availability/check - Unknown slot: item_id=%s, slot_id=%s", req.ItemID, req.SlotID)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /availability/check - Failed: item_id=%s, error=%v", req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - item_id=%s, slot_id=%s, available=%t",
		req.ItemID, req.SlotID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
