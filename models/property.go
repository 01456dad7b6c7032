package models

import "time"

type Property struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	LandlordID      string     `gorm:"index;not null" json:"landlord_id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Address         string     `gorm:"not null" json:"address"`
	Description     string     `json:"description"`
	RentAmount      float64    `gorm:"not null" json:"rent_amount"`
	Bedrooms        int        `json:"bedrooms"`
	Bathrooms       int        `json:"bathrooms"`
	SquareFootage   float64    `json:"square_footage"`
	IsAvailable     bool       `gorm:"default:true" json:"is_available"`
	Status          string     `gorm:"size:50" json:"status"` // e.g. "Vacant", "Selected", "Occupied"
	CurrentTenantID string     `json:"current_tenant_id"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUpdated     *time.Time `json:"last_updated"`
}
