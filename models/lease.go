package models

import "time"

type Lease struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PropertyID      uint       `gorm:"index;not null" json:"property_id"`
	TenantID        string     `gorm:"index;not null" json:"tenant_id"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         time.Time  `gorm:"not null" json:"end_date"`
	MonthlyRent     float64    `gorm:"not null" json:"monthly_rent"`
	SecurityDeposit float64    `json:"security_deposit"`
	LeaseTerms      string     `json:"lease_terms"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUpdated     *time.Time `json:"last_updated"`
}
