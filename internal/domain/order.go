package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending            OrderStatus = "pending"
	StatusPrepared           OrderStatus = "prepared"
	StatusPartiallyCollected OrderStatus = "partially_collected"
	StatusCollected          OrderStatus = "collected"
	StatusCancelled          OrderStatus = "cancelled"
	// StatusCompleted терминальный синоним полностью выданного заказа
	StatusCompleted OrderStatus = "completed"
)

// statusRank порядок статусов в жизненном цикле заказа
// Переходы допустимы только вперед; cancelled достижим из любого нетерминального
var statusRank = map[OrderStatus]int{
	StatusPending:            0,
	StatusPrepared:           1,
	StatusPartiallyCollected: 2,
	StatusCollected:          3,
	StatusCompleted:          3,
}

// IsTerminal returns true if no further transitions are allowed from the status
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCollected || s == StatusCompleted || s == StatusCancelled
}

// IsValid returns true if the status is a known order status
func (s OrderStatus) IsValid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Order represents a placed order: food lines and/or screen bookings
type Order struct {
	ID           uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	CustomerPhone *string
	SeatNumber   *string
	TotalAmount  float64
	Status       OrderStatus
	// QRToken уникальный токен выдачи заказа (сканируется на кассе)
	QRToken        string
	CouponCode     *string
	DiscountAmount float64

	CollectedByStaffID *uuid.UUID
	CollectedAt        *time.Time

	Items []*OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo validates an order status transition.
// Lifecycle: pending -> prepared -> {partially_collected -> collected} | collected,
// forward skips allowed, cancelled reachable from any non-terminal state,
// completed is a terminal synonym for collected. Terminal states never re-open.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	if o.Status.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	nextRank, ok := statusRank[next]
	if !ok {
		return false
	}
	return nextRank > statusRank[o.Status]
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// HoldsSlots сообщает, удерживают ли позиции заказа свои слоты
// Слот освобождается только отменой заказа
func (o *Order) HoldsSlots() bool {
	return !o.IsCancelled()
}

// OrderItem represents a single order line: a dish position or a screen booking
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	Price      float64
	Notes      *string
	Category   Category

	// Поля бронирования экрана
	SelectedSlotID    *string
	SelectedStartTime *time.Time
	DurationMinutes   int
	SeatType          *string

	IsDelivered       bool
	DeliveredQuantity int
}

// IsBooking returns true if the line is a screen booking with a concrete slot and time
func (i *OrderItem) IsBooking() bool {
	return i.Category == CategoryGame && i.SelectedSlotID != nil && i.SelectedStartTime != nil
}

// Interval returns the booked time interval of a booking line
func (i *OrderItem) Interval() (TimeInterval, bool) {
	if !i.IsBooking() {
		return TimeInterval{}, false
	}
	duration := i.DurationMinutes
	if duration <= 0 {
		duration = DefaultScreenDurationMinutes
	}
	return NewInterval(*i.SelectedStartTime, duration), true
}

// CanteenOrdersFilter фильтр ленты заказов столовой
type CanteenOrdersFilter struct {
	Status           *OrderStatus // Фильтр по статусу (опционально)
	StartDate        *time.Time   // Начало периода (опционально)
	EndDate          *time.Time   // Конец периода (опционально)
	IncludeCancelled bool         // Включать ли отмененные заказы
}
