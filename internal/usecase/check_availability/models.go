package check_availability

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса проверки доступности слота экрана
type Request struct {
	ItemID          uuid.UUID // ID экрана в меню
	SlotID          string    // Слот экрана (например, "Screen 1")
	StartTime       time.Time // Желаемое время начала
	DurationMinutes int       // Длительность; 0 означает длительность экрана по умолчанию
}

// Response модель ответа о доступности слота
type Response struct {
	IsAvailable bool
	// Degraded выставляется, когда проверить занятость не удалось
	// и ответ определен политикой availability_fail_mode
	Degraded bool
	// Conflict занятый интервал, из-за которого слот недоступен
	ConflictStart *time.Time
	ConflictEnd   *time.Time
}
