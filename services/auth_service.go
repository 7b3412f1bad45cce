package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"real-estate-api/models"
)

// RegisterInput carries client-supplied profile hints for registration.
// Claims from the identity oracle always win over these; the client-asserted
// email and name are only used when the oracle did not supply them.
type RegisterInput struct {
	Name      string
	Email     string
	Role      string
	AvatarURL string
}

// ProfileUpdate carries the mutable profile attributes
type ProfileUpdate struct {
	Name      string
	AvatarURL string
}

// AuthService implements the account lifecycle on top of the token verifier
// and the user directory
type AuthService struct {
	db       *gorm.DB
	verifier TokenVerifier
}

// NewAuthService creates a new auth service instance
func NewAuthService(db *gorm.DB, verifier TokenVerifier) *AuthService {
	return &AuthService{db: db, verifier: verifier}
}

// Register verifies the credential and creates a new active user for the
// resolved subject. Fails with ErrAlreadyRegistered when a user already
// exists for the subject or the resolved email. Both existence checks run
// before any write so a failed registration never leaves a partial record.
func (s *AuthService) Register(ctx context.Context, accessToken string, input RegisterInput) (*models.User, error) {
	claims, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	// Oracle claims take precedence over client hints
	email := claims.Email
	if email == "" {
		email = input.Email
	}
	name := claims.Name
	if name == "" {
		name = input.Name
	}
	avatarURL := claims.AvatarURL
	if avatarURL == "" {
		avatarURL = input.AvatarURL
	}

	if email == "" {
		return nil, ValidationError("email is required")
	}
	if name == "" {
		return nil, ValidationError("name is required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !models.ValidRole(role) {
		return nil, ValidationError("unknown role %q", role)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("subject_id = ?", claims.SubjectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing subject: %w", err)
	}
	if count > 0 {
		log.Printf("Registration rejected: subject %s already exists", claims.SubjectID)
		return nil, ErrAlreadyRegistered
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if count > 0 {
		log.Printf("Registration rejected: email %s already exists", email)
		return nil, ErrAlreadyRegistered
	}

	user := models.User{
		SubjectID: claims.SubjectID,
		Name:      name,
		Email:     email,
		AvatarURL: avatarURL,
		Role:      role,
		Status:    models.StatusActive,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Concurrent registration can still trip the storage constraint
		if IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User registered successfully: %s", user.Email)
	return &user, nil
}

// Login verifies the credential and returns the stored profile for the
// subject. Fails with ErrNotRegistered when no user exists and
// ErrAccountNotActive when the account is suspended.
func (s *AuthService) Login(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", claims.SubjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive() {
		return nil, ErrAccountNotActive
	}

	log.Printf("User logged in successfully: %s", user.Email)
	return &user, nil
}

// Logout verifies the credential to confirm it is well formed. Tokens are
// stateless so there is no server-side session to invalidate.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if _, err := s.verifier.Verify(ctx, accessToken); err != nil {
		return err
	}
	log.Printf("User logged out successfully")
	return nil
}

// GetProfile verifies the credential and returns the profile for the subject
func (s *AuthService) GetProfile(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.findBySubject(ctx, claims.SubjectID)
}

// UpdateProfile mutates only the display attributes (name, avatar URL) of the
// profile for the verified subject
func (s *AuthService) UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (*models.User, error) {
	claims, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.findBySubject(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}

	user.Name = update.Name
	user.AvatarURL = update.AvatarURL

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	log.Printf("User profile updated successfully: %s", user.Email)
	return user, nil
}

func (s *AuthService) findBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
