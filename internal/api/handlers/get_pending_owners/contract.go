package get_pending_owners

import (
	"context"

	"github.com/m04kA/SC-CanteenService/internal/service/owners/models"
)

type OwnerService interface {
	GetPending(ctx context.Context) (*models.OwnerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
