package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.UTC)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	booked := NewInterval(at(14, 0), 60) // 14:00-15:00

	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"request inside booking", at(14, 30), 30, true},
		{"request covers booking", at(13, 30), 120, true},
		{"request overlaps start", at(13, 30), 60, true},
		{"request overlaps end", at(14, 45), 60, true},
		{"touching before is free", at(13, 0), 60, false},
		{"touching after is free", at(15, 0), 30, false},
		{"fully before", at(12, 0), 60, false},
		{"fully after", at(16, 0), 60, false},
		{"identical interval", at(14, 0), 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewInterval(tt.start, tt.duration)
			assert.Equal(t, tt.want, req.Overlaps(booked))
			// Пересечение симметрично
			assert.Equal(t, tt.want, booked.Overlaps(req))
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv := NewInterval(at(14, 30), 30)
	assert.Equal(t, at(14, 30), iv.Start)
	assert.Equal(t, at(15, 0), iv.End)
}

func TestBookingRequest_Interval(t *testing.T) {
	req := BookingRequest{
		SlotID:          "Screen 1",
		StartTime:       at(14, 30),
		DurationMinutes: 30,
	}

	iv := req.Interval()
	assert.Equal(t, at(14, 30), iv.Start)
	assert.Equal(t, at(15, 0), iv.End)
}

func TestOrderItem_Interval(t *testing.T) {
	slot := "Screen 1"
	start := at(14, 0)

	booking := &OrderItem{
		Category:          CategoryGame,
		SelectedSlotID:    &slot,
		SelectedStartTime: &start,
		DurationMinutes:   60,
	}

	iv, ok := booking.Interval()
	assert.True(t, ok)
	assert.Equal(t, at(14, 0), iv.Start)
	assert.Equal(t, at(15, 0), iv.End)

	// Длительность по умолчанию, если в строке заказа она не сохранена
	booking.DurationMinutes = 0
	iv, ok = booking.Interval()
	assert.True(t, ok)
	assert.Equal(t, at(15, 0), iv.End)

	food := &OrderItem{Category: CategoryFood}
	_, ok = food.Interval()
	assert.False(t, ok)
}

func TestMenuItem_HasSlot(t *testing.T) {
	item := &MenuItem{
		Category: CategoryGame,
		SlotIDs:  []string{"Screen 1", "Screen 2", "Screen 3", "Screen 4"},
	}

	assert.True(t, item.HasSlot("Screen 2"))
	assert.False(t, item.HasSlot("Screen 5"))
	assert.True(t, item.IsBookable())

	food := &MenuItem{Category: CategoryFood}
	assert.False(t, food.IsBookable())
}

func TestMenuItem_BookingDuration(t *testing.T) {
	item := &MenuItem{DurationMinutes: 90}
	assert.Equal(t, 90, item.BookingDuration())

	item.DurationMinutes = 0
	assert.Equal(t, DefaultScreenDurationMinutes, item.BookingDuration())
}
