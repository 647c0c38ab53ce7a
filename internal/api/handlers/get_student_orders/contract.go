package get_student_orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

type OrderService interface {
	GetStudentOrders(ctx context.Context, studentID uuid.UUID) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
