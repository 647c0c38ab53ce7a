package toggle_favorite

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

type MenuService interface {
	ToggleFavorite(ctx context.Context, studentID, itemID uuid.UUID) (*models.ToggleFavoriteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
