package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequest запрос на бронирование слота экрана
// Живет только в корзине и в предоплатной проверке, в БД не сохраняется
type BookingRequest struct {
	ItemID          uuid.UUID
	SlotID          string
	StartTime       time.Time
	DurationMinutes int
}

// Interval returns the requested half-open time interval
func (r *BookingRequest) Interval() TimeInterval {
	return NewInterval(r.StartTime, r.DurationMinutes)
}

// TimeInterval полуинтервал времени [Start, End)
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the half-open interval [start, start+duration)
func NewInterval(start time.Time, durationMinutes int) TimeInterval {
	return TimeInterval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports a real intersection of two half-open intervals.
// Touching endpoints (one ends exactly where the other starts) do NOT overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return other.Start.Before(i.End) && other.End.After(i.Start)
}

// AvailabilityResult результат проверки доступности слота
type AvailabilityResult struct {
	IsAvailable bool
	// Conflict первый найденный конфликтующий интервал (если слот занят)
	Conflict *TimeInterval
}
