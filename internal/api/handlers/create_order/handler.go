package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры заказа"
	msgUnauthorized       = "требуется авторизация"
	msgItemNotFound       = "позиция меню не найдена"
	msgItemUnavailable    = "позиция меню недоступна"
	msgItemNotBookable    = "эта позиция не бронируется по слотам"
	msgUnknownSlot        = "слот не принадлежит этому экрану"
	msgSlotConflict       = "выбранный слот уже забронирован"
	msgPaymentFailed      = "оплата отклонена"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	studentName, _ := middleware.GetUserName(r.Context())

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID, studentName)
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSlotConflict):
			h.logger.Warn("POST /orders - Slot conflict: student_id=%s, error=%v", studentID, err)
			handlers.RespondJSON(w, http.StatusConflict, slotConflictResponse(err))

		case errors.Is(err, checkout.ErrItemNotFound):
			h.logger.Warn("POST /orders - Item not found: student_id=%s", studentID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkout.ErrItemUnavailable):
			h.logger.Warn("POST /orders - Item unavailable: student_id=%s", studentID)
			handlers.RespondError(w, http.StatusConflict, msgItemUnavailable)

		case errors.Is(err, checkout.ErrItemNotBookable):
			h.logger.Warn("POST /orders - Item not bookable: student_id=%s", studentID)
			handlers.RespondBadRequest(w, msgItemNotBookable)

		case errors.Is(err, checkout.ErrUnknownSlot):
			h.logger.Warn("POST /orders - Unknown slot: student_id=%s", studentID)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, checkout.ErrPaymentFailed):
			h.logger.Warn("POST /orders - Payment failed: student_id=%s", studentID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, checkout.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /orders - Failed to create order: student_id=%s, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%s, student_id=%s, total=%.2f",
		result.ID, studentID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
