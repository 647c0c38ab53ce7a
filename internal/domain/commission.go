package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommissionRecord ежемесячная запись комиссии площадки с дохода столовой
type CommissionRecord struct {
	ID               uuid.UUID
	Month            string // "2025-09"
	TotalIncome      float64
	CommissionAmount float64
	OwnerID          uuid.UUID
	OwnerName        string
	CreatedAt        time.Time
}
