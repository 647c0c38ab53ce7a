package approve_owner

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/service/owners/models"
)

type OwnerService interface {
	Decide(ctx context.Context, ownerID uuid.UUID, req *models.DecideOwnerRequest) (*models.OwnerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
