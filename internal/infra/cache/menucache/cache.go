package menucache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

const menuListKey = "menu:items"

// ErrCacheMiss возвращается, когда в кеше нет актуального списка меню
var ErrCacheMiss = errors.New("menucache: cache miss")

// Cache кеш списка меню поверх Redis
// Кешируется только общий список; персональные поля (избранное) накладываются после чтения
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New создает кеш меню с заданным TTL
func New(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetList читает список меню из кеша
func (c *Cache) GetList(ctx context.Context) ([]*domain.MenuItem, error) {
	payload, err := c.client.Get(ctx, menuListKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("menucache: GetList - redis get: %w", err)
	}

	var items []*domain.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("menucache: GetList - unmarshal payload: %w", err)
	}

	return items, nil
}

// SetList записывает список меню в кеш
func (c *Cache) SetList(ctx context.Context, items []*domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("menucache: SetList - marshal payload: %w", err)
	}

	if err := c.client.Set(ctx, menuListKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("menucache: SetList - redis set: %w", err)
	}

	return nil
}

// Invalidate сбрасывает кеш списка меню
// Вызывается после любой мутации позиций меню
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, menuListKey).Err(); err != nil {
		return fmt.Errorf("menucache: Invalidate - redis del: %w", err)
	}
	return nil
}
