package create_order

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/usecase/checkout"
)

func TestSlotConflictResponse(t *testing.T) {
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	err := &checkout.SlotConflictError{
		ItemName: "PS5 Screen",
		SlotID:   "Screen 1",
		Start:    busyStart,
		End:      busyStart.Add(time.Hour),
	}

	resp := slotConflictResponse(fmt.Errorf("checkout failed: %w", err))

	assert.Equal(t, msgSlotConflict, resp.Error)
	assert.Equal(t, "PS5 Screen", resp.ItemName)
	assert.Equal(t, "Screen 1", resp.SlotID)
	require.NotNil(t, resp.ConflictStart)
	require.NotNil(t, resp.ConflictEnd)
	assert.Equal(t, "2025-10-15T14:00:00Z", *resp.ConflictStart)
	assert.Equal(t, "2025-10-15T15:00:00Z", *resp.ConflictEnd)
}

func TestSlotConflictResponse_BareSentinel(t *testing.T) {
	resp := slotConflictResponse(checkout.ErrSlotConflict)

	assert.Equal(t, msgSlotConflict, resp.Error)
	assert.Empty(t, resp.SlotID)
	assert.Nil(t, resp.ConflictStart)
	assert.Nil(t, resp.ConflictEnd)
}
