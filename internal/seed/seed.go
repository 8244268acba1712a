package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/config"
	"github.com/tomwyatt/hillcrest/internal/pkg/auth"
)

// roleNames maps the fixed role ranks to their display names.
var roleNames = map[int]string{
	models.RolePrincipal: "Principal",
	models.RoleAdmin:     "Admin",
	models.RoleHOD:       "Head of Department",
	models.RoleTeacher:   "Teacher",
	models.RoleUser:      "User",
}

// CreateDefaultData seeds the fixed role set and the default principal
// account. Both are idempotent: existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (roles, principal account)...")
	var finalErr error

	for id := models.RolePrincipal; id <= models.RoleUser; id++ {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO roles (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			id, roleNames[id])
		if err != nil {
			lgr.Error().Err(err).Int("roleID", id).Msg("Error seeding role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if cfg.Seed.PrincipalPassword == "" {
		lgr.Warn().Msg("No principal seed password configured, skipping principal account creation")
		return finalErr
	}

	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Seed.PrincipalEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if principal account exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Principal account already exists, skipping creation")
		return finalErr
	}

	hashedPassword, err := auth.HashPassword(cfg.Seed.PrincipalPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing principal password")
		return errors.Join(finalErr, err)
	}

	principal := &models.User{
		Email:     cfg.Seed.PrincipalEmail,
		Password:  hashedPassword,
		FirstName: "School",
		LastName:  "Principal",
		RoleID:    models.RolePrincipal,
		CreatedAt: time.Now(),
	}
	if err := userRepo.Create(ctx, principal); err != nil {
		lgr.Error().Err(err).Msg("Error creating principal account")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("userID", principal.ID).Msg("Default principal account created")
	return finalErr
}
