package menucache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

func sampleItems() []*domain.MenuItem {
	return []*domain.MenuItem{
		{
			ID:          uuid.New(),
			Name:        "Масала доса",
			Price:       60,
			IsAvailable: true,
			Category:    domain.CategoryFood,
		},
		{
			ID:              uuid.New(),
			Name:            "PS5 Screen 1",
			Price:           100,
			IsAvailable:     true,
			Category:        domain.CategoryGame,
			SlotIDs:         []string{"Screen 1"},
			DurationMinutes: 60,
		},
	}
}

func TestCache_SetAndGetList(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := New(client, 5*time.Minute)

	items := sampleItems()
	payload, err := json.Marshal(items)
	require.NoError(t, err)

	mock.ExpectSet(menuListKey, payload, 5*time.Minute).SetVal("OK")
	require.NoError(t, cache.SetList(context.Background(), items))

	mock.ExpectGet(menuListKey).SetVal(string(payload))
	got, err := cache.GetList(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, items[0].ID, got[0].ID)
	assert.Equal(t, items[1].SlotIDs, got[1].SlotIDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetList_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := New(client, time.Minute)

	mock.ExpectGet(menuListKey).RedisNil()

	_, err := cache.GetList(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := New(client, time.Minute)

	mock.ExpectDel(menuListKey).SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
