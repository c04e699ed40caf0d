package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/repositories"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
	"github.com/veles/academia/internal/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@ams.edu.mk"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData ensures a default administrator account exists so a
// fresh database is usable immediately. Safe to call on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for default admin: %w", err)
	}
	if exists {
		logger.Debug().Str("email", defaultAdminEmail).Msg("Default admin already present, skipping seed")
		return nil
	}

	hashed, err := pkgauth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		RoleType: models.RoleAdmin,
		IsActive: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
