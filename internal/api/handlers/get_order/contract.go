package get_order

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, role domain.Role) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
