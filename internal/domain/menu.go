package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents the kind of a menu item
type Category string

const (
	CategoryFood Category = "food"
	CategoryGame Category = "game" // бронируемые экраны (screen time)
)

// DietaryTag маркировка блюда
type DietaryTag string

const (
	TagVegetarian DietaryTag = "vegetarian"
	TagVegan      DietaryTag = "vegan"
	TagGlutenFree DietaryTag = "gluten_free"
)

// MenuItem represents a sellable canteen position: a dish or a bookable screen
type MenuItem struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	IsAvailable bool
	Category    Category
	DietaryTags []DietaryTag

	// Поля экранов: фиксированный набор слотов и длительность бронирования
	SlotIDs         []string
	DurationMinutes int

	AverageRating float64
	FavoriteCount int
	// IsFavorited вычисляется для конкретного пользователя при чтении
	IsFavorited bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the item is a screen that is booked by time slot
func (m *MenuItem) IsBookable() bool {
	return m.Category == CategoryGame && len(m.SlotIDs) > 0
}

// HasSlot returns true if slotID belongs to the item's slot set
func (m *MenuItem) HasSlot(slotID string) bool {
	for _, id := range m.SlotIDs {
		if id == slotID {
			return true
		}
	}
	return false
}

// BookingDuration returns the item's booking duration, falling back to the default
func (m *MenuItem) BookingDuration() int {
	if m.DurationMinutes > 0 {
		return m.DurationMinutes
	}
	return DefaultScreenDurationMinutes
}
