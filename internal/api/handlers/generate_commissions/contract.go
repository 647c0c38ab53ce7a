package generate_commissions

import (
	"context"

	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
)

type CommissionService interface {
	GenerateForMonth(ctx context.Context, req *models.GenerateRequest) (*models.CommissionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
