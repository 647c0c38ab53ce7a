package get_menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

type MenuService interface {
	List(ctx context.Context, studentID *uuid.UUID) (*models.MenuListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
