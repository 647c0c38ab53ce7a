package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/infra/cache/menucache"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	"github.com/m04kA/SC-CanteenService/internal/service/menu/models"
)

// Service сервис для работы с меню и избранным
type Service struct {
	menuRepo MenuRepository
	// cache допускает nil, если Redis выключен в конфигурации
	cache  MenuCache
	logger Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(menuRepo MenuRepository, cache MenuCache, logger Logger) *Service {
	return &Service{
		menuRepo: menuRepo,
		cache:    cache,
		logger:   logger,
	}
}

// List получает список меню
// Общий список кешируется; флаги избранного накладываются для конкретного студента
func (s *Service) List(ctx context.Context, studentID *uuid.UUID) (*models.MenuListResponse, error) {
	items, err := s.listItems(ctx)
	if err != nil {
		return nil, err
	}

	if studentID != nil {
		favorites, err := s.menuRepo.GetFavoriteIDs(ctx, *studentID)
		if err != nil {
			s.logger.Error("List: failed to get favorites for student=%s: %v", *studentID, err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}
		for _, item := range items {
			item.IsFavorited = favorites[item.ID]
		}
	}

	return models.FromDomainItemList(items), nil
}

func (s *Service) listItems(ctx context.Context) ([]*domain.MenuItem, error) {
	if s.cache != nil {
		items, err := s.cache.GetList(ctx)
		if err == nil {
			s.logger.Info("List: served %d items from cache", len(items))
			return items, nil
		}
		if !errors.Is(err, menucache.ErrCacheMiss) {
			// Кеш не критичен, читаем из БД
			s.logger.Warn("List: cache read failed: %v", err)
		}
	}

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, items); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	return items, nil
}

// GetByID получает позицию меню по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, studentID *uuid.UUID) (*models.MenuItemResponse, error) {
	s.logger.Info("GetByID: fetching item id=%s", id)

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("GetByID: item id=%s not found", id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("GetByID: repository error for item id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if studentID != nil {
		favorites, err := s.menuRepo.GetFavoriteIDs(ctx, *studentID)
		if err != nil {
			s.logger.Error("GetByID: failed to get favorites for student=%s: %v", *studentID, err)
			return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}
		item.IsFavorited = favorites[item.ID]
	}

	return models.FromDomainItem(item), nil
}

// Create создает новую позицию меню от имени владельца столовой
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *models.CreateMenuItemRequest) (*models.MenuItemResponse, error) {
	s.logger.Info("Create: owner=%s creating item name=%s", ownerID, req.Name)

	if err := validateItemRequest(req.Name, req.Price, req.Category, req.SlotIDs); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	item, err := req.ToDomainItem(ownerID)
	if err != nil {
		s.logger.Warn("Create: invalid category=%s", req.Category)
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	created, err := s.menuRepo.Create(ctx, item)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("Create: created item id=%s", created.ID)
	return models.FromDomainItem(created), nil
}

// Update обновляет позицию меню
// Владелец может изменять только собственные позиции, админ - любые
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, role domain.Role, req *models.UpdateMenuItemRequest) (*models.MenuItemResponse, error) {
	s.logger.Info("Update: actor=%s updating item id=%s", actorID, id)

	if err := validateItemRequest(req.Name, req.Price, req.Category, req.SlotIDs); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	existing, err := s.getOwned(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}

	category, err := models.ToDomainCategory(req.Category)
	if err != nil {
		s.logger.Warn("Update: invalid category=%s", req.Category)
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	tags := make([]domain.DietaryTag, 0, len(req.DietaryTags))
	for _, tag := range req.DietaryTags {
		tags = append(tags, domain.DietaryTag(tag))
	}

	item := &domain.MenuItem{
		OwnerID:         existing.OwnerID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable,
		Category:        category,
		DietaryTags:     tags,
		SlotIDs:         req.SlotIDs,
		DurationMinutes: req.DurationMinutes,
		AverageRating:   existing.AverageRating,
		FavoriteCount:   existing.FavoriteCount,
	}

	updated, err := s.menuRepo.Update(ctx, id, item)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("Update: repository error for item id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("Update: updated item id=%s", id)
	return models.FromDomainItem(updated), nil
}

// SetAvailability переключает доступность позиции меню
func (s *Service) SetAvailability(ctx context.Context, id, actorID uuid.UUID, role domain.Role, isAvailable bool) error {
	s.logger.Info("SetAvailability: actor=%s item id=%s available=%t", actorID, id, isAvailable)

	if _, err := s.getOwned(ctx, id, actorID, role); err != nil {
		return err
	}

	if err := s.menuRepo.SetAvailability(ctx, id, isAvailable); err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("SetAvailability: repository error for item id=%s: %v", id, err)
		return fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)
	return nil
}

// Delete удаляет позицию меню
func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID, role domain.Role) error {
	s.logger.Info("Delete: actor=%s deleting item id=%s", actorID, id)

	if _, err := s.getOwned(ctx, id, actorID, role); err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("Delete: repository error for item id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx)

	s.logger.Info("Delete: deleted item id=%s", id)
	return nil
}

// ToggleFavorite добавляет позицию в избранное студента или убирает из него
func (s *Service) ToggleFavorite(ctx context.Context, studentID, itemID uuid.UUID) (*models.ToggleFavoriteResponse, error) {
	s.logger.Info("ToggleFavorite: student=%s item=%s", studentID, itemID)

	// Проверяем существование позиции
	if _, err := s.menuRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("ToggleFavorite: item id=%s not found", itemID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("ToggleFavorite: repository error for item id=%s: %v", itemID, err)
		return nil, fmt.Errorf("%w: ToggleFavorite - repository error: %v", ErrInternal, err)
	}

	isFavorited, err := s.menuRepo.ToggleFavorite(ctx, studentID, itemID)
	if err != nil {
		s.logger.Error("ToggleFavorite: repository error: %v", err)
		return nil, fmt.Errorf("%w: ToggleFavorite - repository error: %v", ErrInternal, err)
	}

	return &models.ToggleFavoriteResponse{
		ItemID:      itemID,
		IsFavorited: isFavorited,
	}, nil
}

// Вспомогательные методы

// getOwned получает позицию и проверяет права на ее изменение
func (s *Service) getOwned(ctx context.Context, id, actorID uuid.UUID, role domain.Role) (*domain.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("getOwned: item id=%s not found", id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("getOwned: repository error for item id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getOwned - repository error: %v", ErrInternal, err)
	}

	if role != domain.RoleAdmin && item.OwnerID != actorID {
		s.logger.Warn("getOwned: access denied for actor=%s to item id=%s", actorID, id)
		return nil, ErrAccessDenied
	}

	return item, nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidateCache: %v", err)
	}
}

func validateItemRequest(name string, price float64, category string, slotIDs []string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if domain.Category(category) == domain.CategoryFood && len(slotIDs) > 0 {
		return fmt.Errorf("%w: food items cannot have slots", ErrInvalidInput)
	}

	return nil
}
