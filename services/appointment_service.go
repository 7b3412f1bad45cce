package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"real-estate-api/models"
)

// AppointmentInput carries the fields a caller may set on an appointment
type AppointmentInput struct {
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	PropertyID  uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

// AppointmentService implements the appointment booking lifecycle, including
// the status state machine and soft-delete-as-cancellation
type AppointmentService struct {
	db *gorm.DB
}

// NewAppointmentService creates a new appointment service instance
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// Create books a new appointment in status PENDING. The scheduled time must
// be strictly in the future and notes are bounded; nothing is persisted when
// validation fails.
func (s *AppointmentService) Create(ctx context.Context, input AppointmentInput) (*models.Appointment, error) {
	if err := validateAppointmentInput(input); err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		PropertyID:  input.PropertyID,
		ScheduledAt: input.ScheduledAt,
		Notes:       input.Notes,
		Status:      models.AppointmentPending,
	}

	if err := s.db.WithContext(ctx).Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return &appointment, nil
}

// GetByID returns the appointment with the given id
func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.find(ctx, id)
}

// List returns all appointments
func (s *AppointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.db.WithContext(ctx).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Update mutates only the scheduled time and notes. Status is never changed
// by a plain update; use UpdateStatus for transitions.
func (s *AppointmentService) Update(ctx context.Context, id uint, input AppointmentInput) (*models.Appointment, error) {
	if err := validateAppointmentInput(input); err != nil {
		return nil, err
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.ScheduledAt = input.ScheduledAt
	appointment.Notes = input.Notes

	if err := s.save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateStatus applies an explicit status transition. Transitions outside the
// table (including any exit from CANCELLED or COMPLETED) are rejected with
// ErrInvalidTransition.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, next string) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(next) {
		return nil, ValidationError("unknown status %q", next)
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(appointment.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
	}

	if appointment.Status == next {
		return appointment, nil
	}

	appointment.Status = next
	if next == models.AppointmentCancelled {
		now := time.Now()
		appointment.CanceledAt = &now
	}

	if err := s.save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Delete cancels the appointment: the record is retained with status
// CANCELLED and canceled_at set. Deleting an already-cancelled appointment is
// a no-op that preserves the original cancellation time; a completed one
// cannot be cancelled.
func (s *AppointmentService) Delete(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == models.AppointmentCancelled {
		return appointment, nil
	}

	if !models.CanTransition(appointment.Status, models.AppointmentCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, models.AppointmentCancelled)
	}

	now := time.Now()
	appointment.Status = models.AppointmentCancelled
	appointment.CanceledAt = &now

	if err := s.save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) find(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up appointment: %w", err)
	}
	return &appointment, nil
}

func (s *AppointmentService) save(ctx context.Context, appointment *models.Appointment) error {
	if err := appointment.CheckCancellationInvariant(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

func validateAppointmentInput(input AppointmentInput) error {
	if input.BuyerID == uuid.Nil || input.SellerID == uuid.Nil || input.PropertyID == uuid.Nil {
		return ValidationError("buyer_id, seller_id and property_id are required")
	}
	if !input.ScheduledAt.After(time.Now()) {
		return ErrInvalidSchedule
	}
	if len(input.Notes) > models.MaxNotesLength {
		return ValidationError("notes cannot exceed %d characters", models.MaxNotesLength)
	}
	return nil
}
