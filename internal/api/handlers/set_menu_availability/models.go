package set_menu_availability

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}
