package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, item *domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error
	GetFavoriteIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error)
	ToggleFavorite(ctx context.Context, studentID, itemID uuid.UUID) (bool, error)
}

// MenuCache кеш списка меню
type MenuCache interface {
	GetList(ctx context.Context) ([]*domain.MenuItem, error)
	SetList(ctx context.Context, items []*domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
