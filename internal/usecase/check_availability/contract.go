package check_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// GetBookingsForSlot получает занятые интервалы экрана для слота
	GetBookingsForSlot(ctx context.Context, menuItemID uuid.UUID, slotID string) ([]*domain.OrderItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
