package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"real-estate-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Property{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// fakeVerifier maps tokens to identity claims; unknown tokens are rejected
type fakeVerifier struct {
	claims map[string]*IdentityClaims
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, accessToken string) (*IdentityClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	if claims, ok := f.claims[accessToken]; ok {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

func newAuthFixture(t *testing.T, claims map[string]*IdentityClaims) (*AuthService, *gorm.DB) {
	db := setupTestDB(t)
	return NewAuthService(db, &fakeVerifier{claims: claims}), db
}

func TestAuthService_Register(t *testing.T) {
	svc, db := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	user, err := svc.Register(context.Background(), "token-1", RegisterInput{Role: models.RoleBuyer})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "sub-1", user.SubjectID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_RegisterOracleClaimsWinOverHints(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "verified@x.com", Name: "Verified Name"},
	})

	// Client-asserted email and name must never override the verified source
	user, err := svc.Register(context.Background(), "token-1", RegisterInput{
		Email: "attacker@evil.com",
		Name:  "Attacker",
	})
	require.NoError(t, err)

	assert.Equal(t, "verified@x.com", user.Email)
	assert.Equal(t, "Verified Name", user.Name)
}

func TestAuthService_RegisterUsesHintsWhenOracleClaimsMissing(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1"},
	})

	user, err := svc.Register(context.Background(), "token-1", RegisterInput{
		Email:     "hint@x.com",
		Name:      "Hint Name",
		Role:      models.RoleSeller,
		AvatarURL: "https://img.example.com/me.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "hint@x.com", user.Email)
	assert.Equal(t, "Hint Name", user.Name)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, "https://img.example.com/me.png", user.AvatarURL)
}

func TestAuthService_RegisterDuplicateSubject(t *testing.T) {
	svc, db := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
		"token-2": {SubjectID: "sub-1", Email: "other@x.com", Name: "Alice Again"},
	})

	_, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "token-2", RegisterInput{})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// No second record was created
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, db := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
		"token-2": {SubjectID: "sub-2", Email: "a@x.com", Name: "Bob"},
	})

	_, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "token-2", RegisterInput{})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_RegisterMissingEmail(t *testing.T) {
	svc, db := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Name: "No Email"},
	})

	_, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "failed registration must not persist a partial record")
}

func TestAuthService_RegisterUnknownRole(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	_, err := svc.Register(context.Background(), "token-1", RegisterInput{Role: "landlord"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_RegisterInvalidToken(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{})

	_, err := svc.Register(context.Background(), "bad-token", RegisterInput{})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	registered, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "token-1")
	require.NoError(t, err)

	// Login returns the persisted profile unchanged
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, registered.Email, user.Email)
	assert.Equal(t, registered.Name, user.Name)
	assert.Equal(t, registered.Role, user.Role)
}

func TestAuthService_LoginNotRegistered(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-unknown", Email: "a@x.com"},
	})

	_, err := svc.Login(context.Background(), "token-1")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestAuthService_LoginSuspendedAccount(t *testing.T) {
	svc, db := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	user, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	// Suspension is an external admin action; simulate it directly
	require.NoError(t, db.Model(user).Update("status", models.StatusSuspended).Error)

	_, err = svc.Login(context.Background(), "token-1")
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	assert.NoError(t, svc.Logout(context.Background(), "token-1"))
	assert.ErrorIs(t, svc.Logout(context.Background(), "bad-token"), ErrInvalidToken)
}

func TestAuthService_GetProfile(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
		"token-2": {SubjectID: "sub-2", Email: "b@x.com", Name: "Bob"},
	})

	_, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	user, err := svc.GetProfile(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	// Valid token but no local record
	_, err = svc.GetProfile(context.Background(), "token-2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newAuthFixture(t, map[string]*IdentityClaims{
		"token-1": {SubjectID: "sub-1", Email: "a@x.com", Name: "Alice"},
	})

	registered, err := svc.Register(context.Background(), "token-1", RegisterInput{})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), "token-1", ProfileUpdate{
		Name:      "Alice Updated",
		AvatarURL: "https://img.example.com/new.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Updated", updated.Name)
	assert.Equal(t, "https://img.example.com/new.png", updated.AvatarURL)

	// Only the display attributes change
	assert.Equal(t, registered.ID, updated.ID)
	assert.Equal(t, registered.SubjectID, updated.SubjectID)
	assert.Equal(t, registered.Email, updated.Email)
	assert.Equal(t, registered.Role, updated.Role)
	assert.Equal(t, registered.Status, updated.Status)
}
