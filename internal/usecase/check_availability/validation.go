package check_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID == uuid.Nil {
		return fmt.Errorf("%w: itemID is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	if len(req.SlotID) > domain.MaxSlotIDLength {
		return fmt.Errorf("%w: slotID exceeds %d characters", ErrInvalidInput, domain.MaxSlotIDLength)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes > 0 {
		if req.DurationMinutes < domain.MinBookingDurationMinutes || req.DurationMinutes > domain.MaxBookingDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
		}
	}

	return nil
}

// validateItem проверяет, что позиция является экраном с указанным слотом
func validateItem(item *domain.MenuItem, slotID string) error {
	if !item.IsBookable() {
		return ErrItemNotBookable
	}

	if !item.HasSlot(slotID) {
		return ErrUnknownSlot
	}

	return nil
}

// findConflict ищет первый занятый интервал, пересекающийся с запрошенным
// Границы интервалов не считаются пересечением: слот, начинающийся
// ровно в момент окончания другого, свободен
func findConflict(requested domain.TimeInterval, bookings []*domain.OrderItem) *domain.TimeInterval {
	for _, booking := range bookings {
		interval, ok := booking.Interval()
		if !ok {
			continue
		}
		if interval.Overlaps(requested) {
			return &interval
		}
	}
	return nil
}
