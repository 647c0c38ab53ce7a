package delete_menu_item

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

type MenuService interface {
	Delete(ctx context.Context, id, actorID uuid.UUID, role domain.Role) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
