package commissions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// CommissionRepository интерфейс репозитория комиссий
type CommissionRepository interface {
	List(ctx context.Context) ([]*domain.CommissionRecord, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CommissionRecord, error)
	Upsert(ctx context.Context, record *domain.CommissionRecord) error
	IncomeByOwnerForMonth(ctx context.Context, monthStart, monthEnd time.Time) (map[uuid.UUID]float64, error)
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
