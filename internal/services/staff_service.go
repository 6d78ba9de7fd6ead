package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

// CreateStaffMemberInput describes an employee record.
type CreateStaffMemberInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Position string `json:"position" validate:"omitempty,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// ShiftReminderInput names the shift start shown to the staff member.
type ShiftReminderInput struct {
	ShiftTime string `json:"shift_time" validate:"required,max=64"`
}

// StaffService resolves staff identities for user-scoped notifications.
type StaffService struct {
	db     *gorm.DB
	raiser EventRaiser
}

// NewStaffService constructs a StaffService.
func NewStaffService(db *gorm.DB, raiser EventRaiser) (*StaffService, error) {
	if db == nil {
		return nil, errors.New("staff service: db is required")
	}
	return &StaffService{db: db, raiser: raiser}, nil
}

// Create stores a staff member. Duplicate emails are rejected.
func (s *StaffService) Create(ctx context.Context, input CreateStaffMemberInput) (*models.StaffMember, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("Staff name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewBadRequest("Staff email is required")
	}

	member := models.StaffMember{
		Name:     name,
		Position: strings.TrimSpace(input.Position),
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, translateWriteError("staff service: create staff member", err,
			"A staff member with this email already exists")
	}
	return &member, nil
}

// Get loads a staff member by id.
func (s *StaffService) Get(ctx context.Context, id uint) (*models.StaffMember, error) {
	ctx = ensureContext(ctx)

	var member models.StaffMember
	if err := s.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Staff member")
		}
		return nil, fmt.Errorf("staff service: load staff member: %w", err)
	}
	return &member, nil
}

// SendShiftReminder raises a shift reminder addressed to the staff member.
// Unlike stock and order side effects the reminder is the primary action, so
// failures are returned.
func (s *StaffService) SendShiftReminder(ctx context.Context, staffID uint, input ShiftReminderInput) (*RaiseResult, error) {
	if s.raiser == nil {
		return nil, errors.New("staff service: notifications are disabled")
	}

	member, err := s.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.NewBadRequest("Staff member is inactive")
	}

	return s.raiser.Raise(ctx, EventShiftReminder, EventContext{
		StaffID:   member.ID,
		StaffName: member.Name,
		ShiftTime: input.ShiftTime,
	})
}
