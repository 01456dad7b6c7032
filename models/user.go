package models

import "time"

// Roles recognised by the system. Landlords register in an unapproved state
// and cannot log in until an admin approves them.
const (
	RoleAdmin    = "Admin"
	RoleLandlord = "Landlord"
	RoleTenant   = "Tenant"
)

type User struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id"`
	FirstName          string     `gorm:"size:50;not null" json:"first_name"`
	LastName           string     `gorm:"size:50;not null" json:"last_name"`
	Email              string     `gorm:"unique;not null" json:"email"`
	PhoneNumber        string     `json:"phone_number"`
	Password           string     `gorm:"not null" json:"-"`
	Role               string     `gorm:"not null" json:"role"`
	Approved           bool       `gorm:"default:true" json:"approved"`
	EmailNotifications bool       `gorm:"default:true" json:"email_notifications"`
	SmsNotifications   bool       `gorm:"default:false" json:"sms_notifications"`
	PushNotifications  bool       `gorm:"default:true" json:"push_notifications"`
	PushToken          string     `gorm:"column:push_token" json:"push_token"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login"`
}
