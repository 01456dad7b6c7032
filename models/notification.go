package models

import "time"

const (
	NotificationTypeRentReminder        = "RentReminder"
	NotificationTypeMaintenanceUpdate   = "MaintenanceUpdate"
	NotificationTypePaymentConfirmation = "PaymentConfirmation"
)

type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"size:100;not null" json:"title"`
	Message   string     `gorm:"not null" json:"message"`
	Type      string     `gorm:"not null" json:"type"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	IsSent    bool       `gorm:"default:false" json:"is_sent"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
	SentAt    *time.Time `json:"sent_at"`
}
