package models

import "time"

// Analytics is a daily snapshot of platform activity, recorded on demand by an
// admin rather than by a background scheduler.
type Analytics struct {
	ID                                uint      `gorm:"primaryKey" json:"id"`
	Date                              time.Time `gorm:"index" json:"date"`
	NewLeasesCount                    int64     `json:"new_leases_count"`
	ActiveLeasesCount                 int64     `json:"active_leases_count"`
	TotalPaymentsReceived             float64   `json:"total_payments_received"`
	SuccessfulPaymentsCount           int64     `json:"successful_payments_count"`
	FailedPaymentsCount               int64     `json:"failed_payments_count"`
	NewMaintenanceRequestsCount       int64     `json:"new_maintenance_requests_count"`
	CompletedMaintenanceRequestsCount int64     `json:"completed_maintenance_requests_count"`
	AvailablePropertiesCount          int64     `json:"available_properties_count"`
	NotificationsSentCount            int64     `json:"notifications_sent_count"`
	UnreadNotificationsCount          int64     `json:"unread_notifications_count"`
}
