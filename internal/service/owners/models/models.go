package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// Request модели

// DecideOwnerRequest решение админа по заявке владельца
type DecideOwnerRequest struct {
	Approve bool `json:"approve"`
}

// Response модели

// OwnerResponse ответ с данными владельца столовой
type OwnerResponse struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	CanteenName    *string    `json:"canteenName,omitempty"`
	ApprovalStatus string     `json:"approvalStatus"`
	ApprovalDate   *time.Time `json:"approvalDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// OwnerListResponse ответ со списком владельцев
type OwnerListResponse struct {
	Owners []OwnerResponse `json:"owners"`
	Total  int             `json:"total"`
}

// FromDomainProfile конвертирует профиль владельца в response
func FromDomainProfile(profile *domain.Profile) *OwnerResponse {
	resp := &OwnerResponse{
		ID:           profile.ID,
		Username:     profile.Username,
		Phone:        profile.Phone,
		Email:        profile.Email,
		CanteenName:  profile.CanteenName,
		ApprovalDate: profile.ApprovalDate,
		CreatedAt:    profile.CreatedAt,
	}
	if profile.ApprovalStatus != nil {
		resp.ApprovalStatus = string(*profile.ApprovalStatus)
	}
	return resp
}

// FromDomainProfileList конвертирует список профилей в response
func FromDomainProfileList(profiles []*domain.Profile) *OwnerListResponse {
	resp := &OwnerListResponse{
		Owners: make([]OwnerResponse, 0, len(profiles)),
		Total:  len(profiles),
	}
	for _, profile := range profiles {
		resp.Owners = append(resp.Owners, *FromDomainProfile(profile))
	}
	return resp
}
