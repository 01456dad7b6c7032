package models

import "time"

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

const (
	PaymentMethodMobileMoney = "MobileMoney"
	PaymentMethodCash        = "Cash"
)

// Payment is a single attempt by a tenant to pay rent. MobileMoney attempts
// are created Pending and settle exactly once via the provider callback; cash
// attempts are recorded Completed immediately. Rows are never deleted.
type Payment struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	LeaseID            uint       `gorm:"not null" json:"lease_id"`
	PropertyID         uint       `gorm:"not null" json:"property_id"`
	TenantID           string     `gorm:"index;not null" json:"tenant_id"`
	Amount             float64    `gorm:"not null" json:"amount"`
	Method             string     `gorm:"not null" json:"method"`
	PhoneNumber        string     `json:"phone_number"`
	CheckoutRequestID  string     `gorm:"unique;not null" json:"checkout_request_id"`
	MpesaReceiptNumber string     `json:"mpesa_receipt_number"`
	Status             string     `gorm:"not null" json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	LastUpdated        *time.Time `json:"last_updated"`
}

// IsTerminal reports whether the payment has settled one way or the other.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}
