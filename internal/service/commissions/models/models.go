package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

// GenerateRequest запрос на расчет комиссий за месяц
type GenerateRequest struct {
	Month string `json:"month"` // "2025-09"
}

// CommissionResponse ответ с записью комиссии
type CommissionResponse struct {
	ID               uuid.UUID `json:"id"`
	Month            string    `json:"month"`
	TotalIncome      float64   `json:"totalIncome"`
	CommissionAmount float64   `json:"commissionAmount"`
	OwnerID          uuid.UUID `json:"ownerId"`
	OwnerName        string    `json:"ownerName"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CommissionListResponse ответ со списком комиссий
type CommissionListResponse struct {
	Records []CommissionResponse `json:"records"`
	Total   int                  `json:"total"`
}

// FromDomainRecord конвертирует domain модель в response
func FromDomainRecord(record *domain.CommissionRecord) *CommissionResponse {
	return &CommissionResponse{
		ID:               record.ID,
		Month:            record.Month,
		TotalIncome:      record.TotalIncome,
		CommissionAmount: record.CommissionAmount,
		OwnerID:          record.OwnerID,
		OwnerName:        record.OwnerName,
		CreatedAt:        record.CreatedAt,
	}
}

// FromDomainRecordList конвертирует список domain моделей в response
func FromDomainRecordList(records []*domain.CommissionRecord) *CommissionListResponse {
	resp := &CommissionListResponse{
		Records: make([]CommissionResponse, 0, len(records)),
		Total:   len(records),
	}
	for _, record := range records {
		resp.Records = append(resp.Records, *FromDomainRecord(record))
	}
	return resp
}
