package get_canteen_orders

import (
	"context"

	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

type OrderService interface {
	GetCanteenOrders(ctx context.Context, req *models.GetCanteenOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
