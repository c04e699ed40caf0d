package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
)

func newTestJWTService() *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "test-secret-key-for-unit-tests",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "academia-test",
	})
}

func registerTestUser(t *testing.T, svc AuthService, email, password string, role string, teacherID, studentID *int64) {
	t.Helper()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     email,
		Password:  password,
		RoleType:  role,
		TeacherID: teacherID,
		StudentID: studentID,
	})
	require.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newTestJWTService())
	registerTestUser(t, svc, "admin@ams.edu.mk", "Admin123!", "ADMIN", nil, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@ams.edu.mk",
		Password: "Admin123!",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)
	assert.Equal(t, "ADMIN", resp.User.RoleType)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newTestJWTService())
	registerTestUser(t, svc, "admin@ams.edu.mk", "Admin123!", "ADMIN", nil, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@ams.edu.mk",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newTestJWTService())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@ams.edu.mk",
		Password: "whatever",
	})
	// unknown account and wrong password must look the same to the caller
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, newTestJWTService())
	registerTestUser(t, svc, "gone@ams.edu.mk", "Pass1234!", "ADMIN", nil, nil)
	store.users["gone@ams.edu.mk"].IsActive = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "gone@ams.edu.mk",
		Password: "Pass1234!",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRegisterRoleLinkRules(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		teacherID *int64
		studentID *int64
		wantErr   bool
	}{
		{"teacher with teacher link", "TEACHER", int64Ptr(1), nil, false},
		{"teacher without link", "TEACHER", nil, nil, true},
		{"teacher with student link", "TEACHER", int64Ptr(1), int64Ptr(2), true},
		{"student with student link", "STUDENT", nil, int64Ptr(2), false},
		{"student without link", "STUDENT", nil, nil, true},
		{"admin without links", "ADMIN", nil, nil, false},
		{"admin with teacher link", "ADMIN", int64Ptr(1), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserStore(), newTestJWTService())
			resp, err := svc.Register(context.Background(), dto.RegisterRequest{
				Email:     "user@ams.edu.mk",
				Password:  "Pass1234!",
				RoleType:  tt.role,
				TeacherID: tt.teacherID,
				StudentID: tt.studentID,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, resp.RoleType)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newTestJWTService())
	registerTestUser(t, svc, "dup@ams.edu.mk", "Pass1234!", "ADMIN", nil, nil)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "dup@ams.edu.mk",
		Password: "Pass1234!",
		RoleType: "ADMIN",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, newTestJWTService())
	registerTestUser(t, svc, "hash@ams.edu.mk", "Pass1234!", "ADMIN", nil, nil)

	stored := store.users["hash@ams.edu.mk"]
	assert.NotEqual(t, "Pass1234!", stored.Password)
	assert.True(t, pkgauth.CheckPassword(stored.Password, "Pass1234!"))
	assert.Equal(t, models.RoleAdmin, stored.RoleType)
}
