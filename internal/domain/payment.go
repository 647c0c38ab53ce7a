package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus статус платежа в шлюзе
type PaymentStatus string

const (
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
	PaymentPending    PaymentStatus = "pending"
)

// PaymentRecord запись о платеже, привязанная к заказу
type PaymentRecord struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ChargeID  string
	Amount    float64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
}
