package cancel_order

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

type OrderService interface {
	Cancel(ctx context.Context, id, actorID uuid.UUID, role domain.Role) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
