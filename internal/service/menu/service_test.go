package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/infra/cache/menucache"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
	"github.com/m04kA/SC-CanteenService/pkg/ptr"
)

type fakeMenuRepo struct {
	items     map[uuid.UUID]*domain.MenuItem
	favorites map[uuid.UUID]map[uuid.UUID]bool // student -> item -> true
	listCalls int
}

func newFakeMenuRepo(items ...*domain.MenuItem) *fakeMenuRepo {
	f := &fakeMenuRepo{
		items:     make(map[uuid.UUID]*domain.MenuItem),
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeMenuRepo) Create(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, menuRepo.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeMenuRepo) List(_ context.Context) ([]*domain.MenuItem, error) {
	f.listCalls++
	out := make([]*domain.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMenuRepo) Update(_ context.Context, id uuid.UUID, item *domain.MenuItem) (*domain.MenuItem, error) {
	if _, ok := f.items[id]; !ok {
		return nil, menuRepo.ErrItemNotFound
	}
	item.ID = id
	f.items[id] = item
	return item, nil
}

func (f *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return menuRepo.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeMenuRepo) SetAvailability(_ context.Context, id uuid.UUID, isAvailable bool) error {
	item, ok := f.items[id]
	if !ok {
		return menuRepo.ErrItemNotFound
	}
	item.IsAvailable = isAvailable
	return nil
}

func (f *fakeMenuRepo) GetFavoriteIDs(_ context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for itemID := range f.favorites[studentID] {
		out[itemID] = true
	}
	return out, nil
}

func (f *fakeMenuRepo) ToggleFavorite(_ context.Context, studentID, itemID uuid.UUID) (bool, error) {
	if f.favorites[studentID] == nil {
		f.favorites[studentID] = make(map[uuid.UUID]bool)
	}
	if f.favorites[studentID][itemID] {
		delete(f.favorites[studentID], itemID)
		return false, nil
	}
	f.favorites[studentID][itemID] = true
	return true, nil
}

type fakeMenuCache struct {
	items       []*domain.MenuItem
	invalidated int
}

func (f *fakeMenuCache) GetList(_ context.Context) ([]*domain.MenuItem, error) {
	if f.items == nil {
		return nil, menucache.ErrCacheMiss
	}
	return f.items, nil
}

func (f *fakeMenuCache) SetList(_ context.Context, items []*domain.MenuItem) error {
	f.items = items
	return nil
}

func (f *fakeMenuCache) Invalidate(_ context.Context) error {
	f.items = nil
	f.invalidated++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func foodItem(ownerID uuid.UUID, name string) *domain.MenuItem {
	return &domain.MenuItem{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Price:       120,
		IsAvailable: true,
		Category:    domain.CategoryFood,
	}
}

func TestList_CacheFillAndHit(t *testing.T) {
	ownerID := uuid.New()
	repo := newFakeMenuRepo(foodItem(ownerID, "Масала доса"), foodItem(ownerID, "Самоса"))
	cache := &fakeMenuCache{}
	svc := NewService(repo, cache, nopLogger{})

	first, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, 1, repo.listCalls)

	// Повторный запрос обслуживается кешем
	second, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 1, repo.listCalls)
}

func TestList_FavoriteFlagsPerStudent(t *testing.T) {
	ownerID := uuid.New()
	item := foodItem(ownerID, "Чай")
	other := foodItem(ownerID, "Кофе")
	repo := newFakeMenuRepo(item, other)
	svc := NewService(repo, nil, nopLogger{})

	studentID := uuid.New()
	_, err := svc.ToggleFavorite(context.Background(), studentID, item.ID)
	require.NoError(t, err)

	result, err := svc.List(context.Background(), &studentID)
	require.NoError(t, err)

	flags := make(map[uuid.UUID]bool)
	for _, entry := range result.Items {
		flags[entry.ID] = entry.IsFavorited
	}
	assert.True(t, flags[item.ID])
	assert.False(t, flags[other.ID])
}

func TestCreate_FoodWithSlotsRejected(t *testing.T) {
	repo := newFakeMenuRepo()
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Create(context.Background(), uuid.New(), &models.CreateMenuItemRequest{
		Name:     "Доса",
		Price:    100,
		Category: string(domain.CategoryFood),
		SlotIDs:  []string{"slot-1"},
	})

	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUpdate_ForeignItemDenied(t *testing.T) {
	ownerID := uuid.New()
	item := foodItem(ownerID, "Пури")
	repo := newFakeMenuRepo(item)
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Update(context.Background(), item.ID, uuid.New(), domain.RoleOwner, &models.UpdateMenuItemRequest{
		Name:     "Пури",
		Price:    90,
		Category: string(domain.CategoryFood),
	})

	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestUpdate_AdminOverridesOwnership(t *testing.T) {
	item := foodItem(uuid.New(), "Пури")
	repo := newFakeMenuRepo(item)
	cache := &fakeMenuCache{items: []*domain.MenuItem{item}}
	svc := NewService(repo, cache, nopLogger{})

	updated, err := svc.Update(context.Background(), item.ID, uuid.New(), domain.RoleAdmin, &models.UpdateMenuItemRequest{
		Name:        "Пури со специями",
		Description: ptr.Ptr("обновленное описание"),
		Price:       95,
		IsAvailable: true,
		Category:    string(domain.CategoryFood),
	})

	require.NoError(t, err)
	assert.Equal(t, "Пури со специями", updated.Name)
	// Мутация сбрасывает кеш списка
	assert.Equal(t, 1, cache.invalidated)
}

func TestToggleFavorite_UnknownItem(t *testing.T) {
	svc := NewService(newFakeMenuRepo(), nil, nopLogger{})

	_, err := svc.ToggleFavorite(context.Background(), uuid.New(), uuid.New())

	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestToggleFavorite_RoundTrip(t *testing.T) {
	item := foodItem(uuid.New(), "Ласси")
	svc := NewService(newFakeMenuRepo(item), nil, nopLogger{})
	studentID := uuid.New()

	first, err := svc.ToggleFavorite(context.Background(), studentID, item.ID)
	require.NoError(t, err)
	assert.True(t, first.IsFavorited)

	second, err := svc.ToggleFavorite(context.Background(), studentID, item.ID)
	require.NoError(t, err)
	assert.False(t, second.IsFavorited)
}
