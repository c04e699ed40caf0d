package services

import (
	"context"
	"fmt"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
	"github.com/veles/academia/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type authServiceImpl struct {
	userRepo   UserStore
	jwtService *pkgauth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, jwtService *pkgauth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			// Same response as a wrong password so accounts cannot be probed
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.RoleType))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Int64("userID", user.ID).Str("roleType", string(user.RoleType)).Msg("User logged in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: toUserResponse(user),
	}, nil
}

// Register creates a new account. Teacher accounts must link a teacher
// record, student accounts a student record, admin accounts neither.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	role := models.RoleType(req.RoleType)
	switch role {
	case models.RoleTeacher:
		if req.TeacherID == nil || req.StudentID != nil {
			return nil, apperrors.NewValidationError("a teacher account must link exactly one teacher record")
		}
	case models.RoleStudent:
		if req.StudentID == nil || req.TeacherID != nil {
			return nil, apperrors.NewValidationError("a student account must link exactly one student record")
		}
	case models.RoleAdmin:
		if req.TeacherID != nil || req.StudentID != nil {
			return nil, apperrors.NewValidationError("an admin account cannot link a teacher or student record")
		}
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		RoleType:  role,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// GetUser retrieves the account record behind a token's user ID
func (s *authServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		RoleType:  string(user.RoleType),
		TeacherID: user.TeacherID,
		StudentID: user.StudentID,
	}
}
