package get_menu_item

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

type MenuService interface {
	GetByID(ctx context.Context, id uuid.UUID, studentID *uuid.UUID) (*models.MenuItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
