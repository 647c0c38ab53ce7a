package get_commissions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
)

type CommissionService interface {
	List(ctx context.Context) (*models.CommissionListResponse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) (*models.CommissionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
