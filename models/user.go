package models

import (
	"time"
)

// User roles. Role is set at registration and is not changed by this service.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User account statuses. Only active accounts may log in.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User represents a marketplace account linked to an identity-provider subject
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SubjectID string    `gorm:"uniqueIndex;not null" json:"subject_id"` // identity provider subject (from 'sub' claim), immutable
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `gorm:"not null;default:'buyer'" json:"role"` // "buyer", "seller" or "admin"
	Status    string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ValidRole reports whether role is one of the known role tags
func ValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
