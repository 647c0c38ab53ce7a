package create_menu_item

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

type MenuService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *models.CreateMenuItemRequest) (*models.MenuItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
