package check_availability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	"github.com/m04kA/SC-CanteenService/pkg/ptr"
)

type fakeMenuRepo struct {
	item *domain.MenuItem
	err  error
}

func (f *fakeMenuRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.MenuItem, error) {
	return f.item, f.err
}

type fakeOrderRepo struct {
	bookings map[string][]*domain.OrderItem // key: slotID
	err      error
	calls    int
}

func (f *fakeOrderRepo) GetBookingsForSlot(_ context.Context, _ uuid.UUID, slotID string) ([]*domain.OrderItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[slotID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func screenItem() *domain.MenuItem {
	return &domain.MenuItem{
		ID:              uuid.New(),
		Name:            "PS5 Screen",
		Category:        domain.CategoryGame,
		SlotIDs:         []string{"Screen 1", "Screen 2"},
		DurationMinutes: 60,
		IsAvailable:     true,
	}
}

func bookingAt(start time.Time, durationMinutes int) *domain.OrderItem {
	return &domain.OrderItem{
		Category:          domain.CategoryGame,
		SelectedSlotID:    ptr.Ptr("Screen 1"),
		SelectedStartTime: &start,
		DurationMinutes:   durationMinutes,
	}
}

func TestExecute_FreeSlot(t *testing.T) {
	item := screenItem()
	uc := NewUseCase(&fakeMenuRepo{item: item}, &fakeOrderRepo{}, true, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)
	assert.False(t, resp.Degraded)
	assert.Nil(t, resp.ConflictStart)
}

func TestExecute_OverlappingBooking(t *testing.T) {
	item := screenItem()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {bookingAt(busyStart, 60)},
	}}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, true, nopLogger{})

	// Запрос начинается в середине занятого интервала
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: busyStart.Add(30 * time.Minute),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	require.NotNil(t, resp.ConflictStart)
	assert.Equal(t, busyStart, *resp.ConflictStart)
	assert.Equal(t, busyStart.Add(time.Hour), *resp.ConflictEnd)
}

func TestExecute_TouchingIntervalsAreFree(t *testing.T) {
	item := screenItem()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {bookingAt(busyStart, 60)},
	}}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, true, nopLogger{})

	// Запрос начинается ровно в момент окончания занятого интервала
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: busyStart.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)
}

func TestExecute_OtherSlotSameTimeIsFree(t *testing.T) {
	item := screenItem()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {bookingAt(busyStart, 60)},
	}}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, true, nopLogger{})

	// То же время на соседнем экране: занятость считается на слот
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 2",
		StartTime: busyStart,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)
	assert.Nil(t, resp.ConflictStart)
}

func TestExecute_RepeatedCheckIsIdempotent(t *testing.T) {
	item := screenItem()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {bookingAt(busyStart, 60)},
	}}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, true, nopLogger{})

	req := &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: busyStart.Add(30 * time.Minute),
	}

	// Проверка только читает брони: повторный вызов возвращает тот же ответ
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, second.IsAvailable)
	assert.Equal(t, 2, orders.calls)
}

func TestExecute_FailOpenOnStorageError(t *testing.T) {
	item := screenItem()
	orders := &fakeOrderRepo{err: errors.New("connection refused")}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, true, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)
	assert.True(t, resp.Degraded)
}

func TestExecute_FailClosedOnStorageError(t *testing.T) {
	item := screenItem()
	orders := &fakeOrderRepo{err: errors.New("connection refused")}
	uc := NewUseCase(&fakeMenuRepo{item: item}, orders, false, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.True(t, resp.Degraded)
}

func TestExecute_ItemNotFound(t *testing.T) {
	uc := NewUseCase(&fakeMenuRepo{err: menuRepo.ErrItemNotFound}, &fakeOrderRepo{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    uuid.New(),
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_NotBookableItem(t *testing.T) {
	dish := &domain.MenuItem{
		ID:       uuid.New(),
		Name:     "Масала доса",
		Category: domain.CategoryFood,
	}
	uc := NewUseCase(&fakeMenuRepo{item: dish}, &fakeOrderRepo{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    dish.ID,
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrItemNotBookable)
}

func TestExecute_UnknownSlot(t *testing.T) {
	item := screenItem()
	uc := NewUseCase(&fakeMenuRepo{item: item}, &fakeOrderRepo{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    item.ID,
		SlotID:    "Screen 9",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeMenuRepo{}, &fakeOrderRepo{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:    "Screen 1",
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ItemID:          uuid.New(),
		SlotID:          "Screen 1",
		StartTime:       time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 10, // ниже минимальной длительности
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ItemID:    uuid.New(),
		SlotID:    strings.Repeat("s", domain.MaxSlotIDLength+1),
		StartTime: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
