package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appointment statuses
const (
	AppointmentPending     = "PENDING"
	AppointmentConfirmed   = "CONFIRMED"
	AppointmentRescheduled = "RESCHEDULED"
	AppointmentCancelled   = "CANCELLED"
	AppointmentCompleted   = "COMPLETED"
)

// MaxNotesLength bounds the free-text notes field
const MaxNotesLength = 1000

// allowedNextStatuses is the appointment transition table. CANCELLED and
// COMPLETED are terminal: they admit no further transitions.
var allowedNextStatuses = map[string][]string{
	AppointmentPending:     {AppointmentConfirmed, AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted},
	AppointmentConfirmed:   {AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted},
	AppointmentRescheduled: {AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted},
	AppointmentCancelled:   {},
	AppointmentCompleted:   {},
}

// Appointment represents a viewing booked between a buyer and a seller over a
// property. Buyer, seller and property are owned by other services and are
// referenced by id only; no foreign keys are enforced here.
type Appointment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BuyerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"seller_id"`
	PropertyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	ScheduledAt time.Time  `gorm:"not null" json:"scheduled_at"`
	Status      string     `gorm:"not null;default:'PENDING';index" json:"status"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CanceledAt  *time.Time `json:"canceled_at"` // set iff Status == CANCELLED
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ValidAppointmentStatus reports whether status is one of the known statuses
func ValidAppointmentStatus(status string) bool {
	_, ok := allowedNextStatuses[status]
	return ok
}

// CanTransition reports whether the status change from -> to is allowed by
// the transition table. A no-op transition (from == to) is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedNextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckCancellationInvariant verifies that CanceledAt is set if and only if
// the appointment is CANCELLED. Run before every save.
func (a *Appointment) CheckCancellationInvariant() error {
	if a.Status == AppointmentCancelled && a.CanceledAt == nil {
		return fmt.Errorf("appointment %d is CANCELLED but canceled_at is unset", a.ID)
	}
	if a.Status != AppointmentCancelled && a.CanceledAt != nil {
		return fmt.Errorf("appointment %d has canceled_at set but status is %s", a.ID, a.Status)
	}
	return nil
}
