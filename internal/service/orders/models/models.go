package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заказа
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CollectRequest запрос на выдачу заказа по QR токену
type CollectRequest struct {
	QRToken string `json:"qrToken"`
	// ItemIDs позиции для частичной выдачи; пустой список означает выдачу всего заказа
	ItemIDs []uuid.UUID `json:"itemIds,omitempty"`
}

// GetCanteenOrdersRequest запрос ленты заказов столовой
type GetCanteenOrdersRequest struct {
	Status           *string    `json:"status,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainStatus конвертирует строку в domain статус заказа
func ToDomainStatus(status string) (domain.OrderStatus, error) {
	s := domain.OrderStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCanteenOrdersRequest) ToDomainFilter() (domain.CanteenOrdersFilter, error) {
	filter := domain.CanteenOrdersFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// OrderItemResponse строка заказа в ответе
type OrderItemResponse struct {
	ID                uuid.UUID  `json:"id"`
	MenuItemID        uuid.UUID  `json:"menuItemId"`
	Name              string     `json:"name"`
	Quantity          int        `json:"quantity"`
	Price             float64    `json:"price"`
	Notes             *string    `json:"notes,omitempty"`
	Category          string     `json:"category"`
	SelectedSlotID    *string    `json:"selectedSlotId,omitempty"`
	SelectedStartTime *time.Time `json:"selectedStartTime,omitempty"`
	DurationMinutes   int        `json:"durationMinutes,omitempty"`
	SeatType          *string    `json:"seatType,omitempty"`
	IsDelivered       bool       `json:"isDelivered"`
	DeliveredQuantity int        `json:"deliveredQuantity"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	StudentID          uuid.UUID           `json:"studentId"`
	StudentName        string              `json:"studentName"`
	CustomerPhone      *string             `json:"customerPhone,omitempty"`
	SeatNumber         *string             `json:"seatNumber,omitempty"`
	TotalAmount        float64             `json:"totalAmount"`
	Status             string              `json:"status"`
	QRToken            string              `json:"qrToken"`
	CouponCode         *string             `json:"couponCode,omitempty"`
	DiscountAmount     float64             `json:"discountAmount"`
	CollectedByStaffID *uuid.UUID          `json:"collectedByStaffId,omitempty"`
	CollectedAt        *time.Time          `json:"collectedAt,omitempty"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// FromDomainOrder конвертирует domain модель в response
func FromDomainOrder(order *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:                 order.ID,
		StudentID:          order.StudentID,
		StudentName:        order.StudentName,
		CustomerPhone:      order.CustomerPhone,
		SeatNumber:         order.SeatNumber,
		TotalAmount:        order.TotalAmount,
		Status:             string(order.Status),
		QRToken:            order.QRToken,
		CouponCode:         order.CouponCode,
		DiscountAmount:     order.DiscountAmount,
		CollectedByStaffID: order.CollectedByStaffID,
		CollectedAt:        order.CollectedAt,
		Items:              make([]OrderItemResponse, 0, len(order.Items)),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:                item.ID,
			MenuItemID:        item.MenuItemID,
			Name:              item.Name,
			Quantity:          item.Quantity,
			Price:             item.Price,
			Notes:             item.Notes,
			Category:          string(item.Category),
			SelectedSlotID:    item.SelectedSlotID,
			SelectedStartTime: item.SelectedStartTime,
			DurationMinutes:   item.DurationMinutes,
			SeatType:          item.SeatType,
			IsDelivered:       item.IsDelivered,
			DeliveredQuantity: item.DeliveredQuantity,
		})
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в response
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(order))
	}
	return resp
}
