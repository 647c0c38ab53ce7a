package collect_order

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

type OrderService interface {
	Collect(ctx context.Context, staffID uuid.UUID, req *models.CollectRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
