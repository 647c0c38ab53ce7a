package checkout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID == uuid.Nil {
		return fmt.Errorf("%w: studentID is required", ErrInvalidInput)
	}

	if req.StudentName == "" {
		return fmt.Errorf("%w: studentName is required", ErrInvalidInput)
	}

	if req.SeatNumber != nil && len(*req.SeatNumber) > domain.MaxSeatNumberLength {
		return fmt.Errorf("%w: seatNumber exceeds %d characters", ErrInvalidInput, domain.MaxSeatNumberLength)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}

	for i, item := range req.Items {
		if item.MenuItemID == uuid.Nil {
			return fmt.Errorf("%w: items[%d].menuItemID is required", ErrInvalidInput, i)
		}

		if item.Quantity <= 0 {
			return fmt.Errorf("%w: items[%d].quantity must be positive", ErrInvalidInput, i)
		}

		if item.Notes != nil && len(*item.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: items[%d].notes exceeds %d characters", ErrInvalidInput, i, domain.MaxNotesLength)
		}

		// Слот и время бронирования указываются вместе
		if (item.SlotID == nil) != (item.StartTime == nil) {
			return fmt.Errorf("%w: items[%d] must set slotID and startTime together", ErrInvalidInput, i)
		}

		if item.SlotID != nil && len(*item.SlotID) > domain.MaxSlotIDLength {
			return fmt.Errorf("%w: items[%d].slotID exceeds %d characters", ErrInvalidInput, i, domain.MaxSlotIDLength)
		}

		if item.DurationMinutes < 0 {
			return fmt.Errorf("%w: items[%d].durationMinutes must not be negative", ErrInvalidInput, i)
		}

		if item.DurationMinutes > 0 &&
			(item.DurationMinutes < domain.MinBookingDurationMinutes || item.DurationMinutes > domain.MaxBookingDurationMinutes) {
			return fmt.Errorf("%w: items[%d].durationMinutes must be between %d and %d",
				ErrInvalidInput, i, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
		}
	}

	return nil
}

// validateBookingLine проверяет строку бронирования против позиции меню
func validateBookingLine(item *domain.MenuItem, line *ItemRequest) error {
	if line.SlotID == nil {
		return nil
	}

	if !item.IsBookable() {
		return fmt.Errorf("%w: item %s", ErrItemNotBookable, item.ID)
	}

	if !item.HasSlot(*line.SlotID) {
		return fmt.Errorf("%w: item %s slot %s", ErrUnknownSlot, item.ID, *line.SlotID)
	}

	return nil
}

// findConflict ищет первый занятый интервал, пересекающийся с запрошенным
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
