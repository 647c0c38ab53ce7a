package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

var (
	// ErrInvalidCategory возвращается при некорректной категории
	ErrInvalidCategory = errors.New("invalid menu category")
)

// Request модели

// CreateMenuItemRequest запрос на создание позиции меню
type CreateMenuItemRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	Price           float64  `json:"price"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Category        string   `json:"category"`
	DietaryTags     []string `json:"dietaryTags,omitempty"`
	SlotIDs         []string `json:"slotIds,omitempty"`         // Слоты экрана (только для category=game)
	DurationMinutes int      `json:"durationMinutes,omitempty"` // Длительность брони (только для category=game)
}

// UpdateMenuItemRequest запрос на обновление позиции меню
type UpdateMenuItemRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	Price           float64  `json:"price"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	IsAvailable     bool     `json:"isAvailable"`
	Category        string   `json:"category"`
	DietaryTags     []string `json:"dietaryTags,omitempty"`
	SlotIDs         []string `json:"slotIds,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
}

// ToDomainCategory конвертирует строку в domain категорию
func ToDomainCategory(category string) (domain.Category, error) {
	switch domain.Category(category) {
	case domain.CategoryFood:
		return domain.CategoryFood, nil
	case domain.CategoryGame:
		return domain.CategoryGame, nil
	default:
		return "", ErrInvalidCategory
	}
}

// ToDomainItem конвертирует запрос создания в domain модель
func (r *CreateMenuItemRequest) ToDomainItem(ownerID uuid.UUID) (*domain.MenuItem, error) {
	category, err := ToDomainCategory(r.Category)
	if err != nil {
		return nil, err
	}

	tags := make([]domain.DietaryTag, 0, len(r.DietaryTags))
	for _, tag := range r.DietaryTags {
		tags = append(tags, domain.DietaryTag(tag))
	}

	return &domain.MenuItem{
		OwnerID:         ownerID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		ImageURL:        r.ImageURL,
		IsAvailable:     true,
		Category:        category,
		DietaryTags:     tags,
		SlotIDs:         r.SlotIDs,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// Response модели

// MenuItemResponse ответ с данными позиции меню
type MenuItemResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	IsAvailable     bool      `json:"isAvailable"`
	Category        string    `json:"category"`
	DietaryTags     []string  `json:"dietaryTags"`
	SlotIDs         []string  `json:"slotIds,omitempty"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	AverageRating   float64   `json:"averageRating"`
	FavoriteCount   int       `json:"favoriteCount"`
	IsFavorited     bool      `json:"isFavorited"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MenuListResponse ответ со списком позиций меню
type MenuListResponse struct {
	Items []MenuItemResponse `json:"items"`
	Total int                `json:"total"`
}

// ToggleFavoriteResponse ответ на переключение избранного
type ToggleFavoriteResponse struct {
	ItemID      uuid.UUID `json:"itemId"`
	IsFavorited bool      `json:"isFavorited"`
}

// FromDomainItem конвертирует domain модель в response
func FromDomainItem(item *domain.MenuItem) *MenuItemResponse {
	tags := make([]string, 0, len(item.DietaryTags))
	for _, tag := range item.DietaryTags {
		tags = append(tags, string(tag))
	}

	return &MenuItemResponse{
		ID:              item.ID,
		OwnerID:         item.OwnerID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		ImageURL:        item.ImageURL,
		IsAvailable:     item.IsAvailable,
		Category:        string(item.Category),
		DietaryTags:     tags,
		SlotIDs:         item.SlotIDs,
		DurationMinutes: item.DurationMinutes,
		AverageRating:   item.AverageRating,
		FavoriteCount:   item.FavoriteCount,
		IsFavorited:     item.IsFavorited,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// FromDomainItemList конвертирует список domain моделей в response
func FromDomainItemList(items []*domain.MenuItem) *MenuListResponse {
	resp := &MenuListResponse{
		Items: make([]MenuItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, *FromDomainItem(item))
	}
	return resp
}
