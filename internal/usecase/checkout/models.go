package checkout

import (
	"time"

	"github.com/google/uuid"
)

// ItemRequest строка заказа в запросе оформления
type ItemRequest struct {
	MenuItemID uuid.UUID
	Quantity   int
	Notes      *string

	// Поля бронирования экрана; заполняются только для игровых позиций
	SlotID          *string
	StartTime       *time.Time
	DurationMinutes int
	SeatType        *string
}

// Request модель запроса оформления заказа
type Request struct {
	StudentID     uuid.UUID
	StudentName   string
	CustomerPhone *string
	SeatNumber    *string
	CouponCode    *string
	// CardToken токен карты для оплаты онлайн; пустой означает оплату на кассе
	CardToken string
	Items     []ItemRequest
}

// ResponseItem строка созданного заказа
type ResponseItem struct {
	ID         uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	Price      float64
	SlotID     *string
	StartTime  *time.Time
}

// Response модель ответа с созданным заказом
type Response struct {
	ID          uuid.UUID
	Status      string
	TotalAmount float64
	QRToken     string
	Items       []ResponseItem
	CreatedAt   time.Time
}
