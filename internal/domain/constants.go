package domain

// Default configuration values
const (
	DefaultScreenDurationMinutes = 60
	DefaultCommissionRate        = 0.05
)

// Business validation constants
const (
	MinBookingDurationMinutes = 15
	MaxBookingDurationMinutes = 240 // 4 hours
	MaxNotesLength            = 500
	MaxSeatNumberLength       = 20
	MaxSlotIDLength           = 50
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// QRTokenPrefix префикс токена выдачи заказа
const QRTokenPrefix = "ORD"

// SlotHoldingStatuses статусы заказов, удерживающих слоты экранов
// Слот освобождает только отмена заказа
var SlotHoldingStatuses = []OrderStatus{
	StatusPending,
	StatusPrepared,
	StatusPartiallyCollected,
	StatusCollected,
	StatusCompleted,
}
