package create_order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/usecase/checkout"
)

// OrderItemRequest строка заказа в HTTP запросе
type OrderItemRequest struct {
	MenuItemID      string  `json:"menuItemId"`
	Quantity        int     `json:"quantity"`
	Notes           *string `json:"notes,omitempty"`
	SlotID          *string `json:"slotId,omitempty"`
	StartTime       *string `json:"startTime,omitempty"` // RFC3339
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	SeatType        *string `json:"seatType,omitempty"`
}

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	CustomerPhone *string            `json:"customerPhone,omitempty"`
	SeatNumber    *string            `json:"seatNumber,omitempty"`
	CouponCode    *string            `json:"couponCode,omitempty"`
	CardToken     string             `json:"cardToken,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// SlotConflictResponse тело ответа 409 при занятом слоте
// Кроме сообщения возвращает позицию, слот и границы занятого интервала
type SlotConflictResponse struct {
	Error         string  `json:"error"`
	ItemName      string  `json:"itemName,omitempty"`
	SlotID        string  `json:"slotId,omitempty"`
	ConflictStart *string `json:"conflictStart,omitempty"`
	ConflictEnd   *string `json:"conflictEnd,omitempty"`
}

// OrderItemResponse строка заказа в HTTP ответе
type OrderItemResponse struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	SlotID     *string `json:"slotId,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
}

// CreateOrderResponse HTTP response model
type CreateOrderResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"totalAmount"`
	QRToken     string              `json:"qrToken"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   string              `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(studentID uuid.UUID, studentName string) (*checkout.Request, error) {
	items := make([]checkout.ItemRequest, 0, len(r.Items))
	for _, line := range r.Items {
		menuItemID, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return nil, err
		}

		var startTime *time.Time
		if line.StartTime != nil {
			parsed, err := time.Parse(time.RFC3339, *line.StartTime)
			if err != nil {
				return nil, err
			}
			startTime = &parsed
		}

		items = append(items, checkout.ItemRequest{
			MenuItemID:      menuItemID,
			Quantity:        line.Quantity,
			Notes:           line.Notes,
			SlotID:          line.SlotID,
			StartTime:       startTime,
			DurationMinutes: line.DurationMinutes,
			SeatType:        line.SeatType,
		})
	}

	return &checkout.Request{
		StudentID:     studentID,
		StudentName:   studentName,
		CustomerPhone: r.CustomerPhone,
		SeatNumber:    r.SeatNumber,
		CouponCode:    r.CouponCode,
		CardToken:     r.CardToken,
		Items:         items,
	}, nil
}

// slotConflictResponse строит тело 409 из ошибки конфликта слота
func slotConflictResponse(err error) *SlotConflictResponse {
	resp := &SlotConflictResponse{Error: msgSlotConflict}

	var conflict *checkout.SlotConflictError
	if errors.As(err, &conflict) {
		start := conflict.Start.Format(time.RFC3339)
		end := conflict.End.Format(time.RFC3339)
		resp.ItemName = conflict.ItemName
		resp.SlotID = conflict.SlotID
		resp.ConflictStart = &start
		resp.ConflictEnd = &end
	}

	return resp
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkout.Response) *CreateOrderResponse {
	out := &CreateOrderResponse{
		ID:          resp.ID.String(),
		Status:      resp.Status,
		TotalAmount: resp.TotalAmount,
		QRToken:     resp.QRToken,
		Items:       make([]OrderItemResponse, 0, len(resp.Items)),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}

	for _, item := range resp.Items {
		line := OrderItemResponse{
			ID:         item.ID.String(),
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			SlotID:     item.SlotID,
		}
		if item.StartTime != nil {
			s := item.StartTime.Format(time.RFC3339)
			line.StartTime = &s
		}
		out.Items = append(out.Items, line)
	}

	return out
}
