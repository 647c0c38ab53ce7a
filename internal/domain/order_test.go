package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusPrepared, true},
		{StatusPending, StatusPartiallyCollected, true}, // быстрая выдача
		{StatusPending, StatusCollected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPrepared, StatusPartiallyCollected, true},
		{StatusPrepared, StatusCollected, true},
		{StatusPrepared, StatusCompleted, true},
		{StatusPrepared, StatusCancelled, true},
		{StatusPartiallyCollected, StatusCollected, true},
		{StatusPartiallyCollected, StatusCancelled, true},

		// Назад дороги нет
		{StatusPrepared, StatusPending, false},
		{StatusPartiallyCollected, StatusPrepared, false},
		{StatusCollected, StatusPending, false},

		// Терминальные статусы не переоткрываются
		{StatusCollected, StatusCancelled, false},
		{StatusCollected, StatusCompleted, false},
		{StatusCompleted, StatusCollected, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPrepared, false},

		// Переход в самого себя не является переходом вперед
		{StatusPending, StatusPending, false},
		{StatusPrepared, StatusPrepared, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.want, o.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCollected.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusPrepared.IsTerminal())
	assert.False(t, StatusPartiallyCollected.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		StatusPending, StatusPrepared, StatusPartiallyCollected,
		StatusCollected, StatusCancelled, StatusCompleted,
	} {
		assert.True(t, s.IsValid(), string(s))
	}

	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrder_HoldsSlots(t *testing.T) {
	for _, s := range SlotHoldingStatuses {
		o := &Order{Status: s}
		assert.True(t, o.HoldsSlots(), string(s))
	}

	cancelled := &Order{Status: StatusCancelled}
	assert.False(t, cancelled.HoldsSlots())
}
