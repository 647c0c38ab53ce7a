package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role роль пользователя в системе
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "canteen_owner"
	RoleAdmin   Role = "admin"
)

// ApprovalStatus статус модерации владельца столовой
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// StaffRole роль сотрудника столовой
type StaffRole string

const (
	StaffCounter   StaffRole = "counter"
	StaffDelivery  StaffRole = "delivery"
	StaffQRScanner StaffRole = "qr_scanner"
	StaffManager   StaffRole = "manager"
)

// Profile represents a registered user: student, canteen owner or admin
type Profile struct {
	ID             uuid.UUID
	Username       string
	Role           Role
	Phone          *string
	Email          *string
	CanteenName    *string
	ApprovalStatus *ApprovalStatus
	ApprovalDate   *time.Time
	StaffRole      *StaffRole
	LoyaltyPoints  int
	CreatedAt      time.Time
}

// IsApprovedOwner returns true if the profile is an owner cleared by an admin
func (p *Profile) IsApprovedOwner() bool {
	return p.Role == RoleOwner && p.ApprovalStatus != nil && *p.ApprovalStatus == ApprovalApproved
}

// CanCollectOrders returns true if the profile may scan QR codes and hand out orders
func (p *Profile) CanCollectOrders() bool {
	if p.Role != RoleOwner {
		return false
	}
	if p.StaffRole == nil {
		return true
	}
	return *p.StaffRole == StaffCounter || *p.StaffRole == StaffQRScanner || *p.StaffRole == StaffManager
}
