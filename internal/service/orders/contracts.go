package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByQRToken(ctx context.Context, token string) (*domain.Order, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*domain.Order, error)
	GetWithFilter(ctx context.Context, filter domain.CanteenOrdersFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	MarkItemsDelivered(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) error
	CountUndelivered(ctx context.Context, orderID uuid.UUID) (int, error)
	SetCollected(ctx context.Context, orderID, staffID uuid.UUID, collectedAt time.Time) error
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// EventPublisher интерфейс публикации событий заказов
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, event any) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
