package models

import "time"

const (
	MaintenanceStatusPending    = "Pending"
	MaintenanceStatusInProgress = "In Progress"
	MaintenanceStatusCompleted  = "Completed"
	MaintenanceStatusCancelled  = "Cancelled"
)

type MaintenanceRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PropertyID  uint       `gorm:"index;not null" json:"property_id"`
	TenantID    string     `gorm:"index;not null" json:"tenant_id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Status      string     `gorm:"not null" json:"status"`
	Notes       string     `json:"notes"`
	Cost        *float64   `json:"cost"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUpdated *time.Time `json:"last_updated"`
	CompletedAt *time.Time `json:"completed_at"`
}
