package check_availability

import (
	"time"

	"github.com/google/uuid"

	checkAvailability "github.com/m04kA/SC-CanteenService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ItemID          string `json:"itemId"`
	SlotID          string `json:"slotId"`
	StartTime       string `json:"startTime"` // RFC3339
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	IsAvailable   bool    `json:"isAvailable"`
	Degraded      bool    `json:"degraded,omitempty"`
	ConflictStart *string `json:"conflictStart,omitempty"`
	ConflictEnd   *string `json:"conflictEnd,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	itemID, err := uuid.Parse(r.ItemID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ItemID:          itemID,
		SlotID:          r.SlotID,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		IsAvailable: resp.IsAvailable,
		Degraded:    resp.Degraded,
	}
	if resp.ConflictStart != nil {
		s := resp.ConflictStart.Format(time.RFC3339)
		out.ConflictStart = &s
	}
	if resp.ConflictEnd != nil {
		e := resp.ConflictEnd.Format(time.RFC3339)
		out.ConflictEnd = &e
	}
	return out
}
