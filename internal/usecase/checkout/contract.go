package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/integrations/payments"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetBookingsForSlot получает занятые интервалы экрана для слота
	// Внутри транзакции строки блокируются через FOR UPDATE
	GetBookingsForSlot(ctx context.Context, menuItemID uuid.UUID, slotID string) ([]*domain.OrderItem, error)
	InsertPayment(ctx context.Context, payment *domain.PaymentRecord) error
}

// PaymentsClient интерфейс клиента платежного шлюза
type PaymentsClient interface {
	Charge(req payments.ChargeRequest) (*payments.ChargeResult, error)
}

// EventPublisher интерфейс публикации событий заказов
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, event any) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
