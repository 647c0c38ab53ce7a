package update_menu_item

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

type MenuService interface {
	Update(ctx context.Context, id, actorID uuid.UUID, role domain.Role, req *models.UpdateMenuItemRequest) (*models.MenuItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
