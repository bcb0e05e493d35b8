// Package seed creates the default data the application needs on first run
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/auth"
)

const defaultAdminEmail = "admin@placemate.app"
const defaultAdminPassword = "ChangeMe#2025"

// CreateDefaultData seeds the built-in roles, the bootstrap admin account
// and the degree and program reference data if they don't exist. Errors
// are collected so one failure does not stop the rest of the seeding.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	roleRepo := repositories.NewRoleRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)
	lookupRepo := repositories.NewLookupRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (roles, admin, reference data)...")
	var finalErr error

	// --- Built-in roles ---
	for _, name := range []string{models.RoleAdmin, models.RolePlacementCell, models.RoleStudent} {
		role := &models.Role{Name: name}
		if err := roleRepo.Create(ctx, role); err != nil && !errors.Is(err, apperrors.ErrRoleAlreadyExists) {
			lgr.Error().Err(err).Str("role", name).Msg("Error creating default role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Bootstrap admin account ---
	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking for admin account")
			finalErr = errors.Join(finalErr, err)
		} else if err := createAdmin(ctx, roleRepo, userRepo, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Degree and program reference data ---
	if err := seedAcademics(ctx, dbPool, lookupRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createAdmin(ctx context.Context, roleRepo *repositories.RoleRepository, userRepo *repositories.UserRepository, lgr zerolog.Logger) error {
	adminRole, err := roleRepo.GetByName(ctx, models.RoleAdmin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error resolving admin role for seed")
		return err
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		IsActive:  true,
	}
	if err := userRepo.Create(ctx, admin, []int64{adminRole.ID}); err != nil {
		lgr.Error().Err(err).Msg("Error creating bootstrap admin account")
		return err
	}

	lgr.Warn().Str("email", defaultAdminEmail).Msg("Bootstrap admin created with default password, change it immediately")
	return nil
}

func seedAcademics(ctx context.Context, dbPool *pgxpool.Pool, lookupRepo *repositories.LookupRepository, lgr zerolog.Logger) error {
	degrees, err := lookupRepo.ListDegrees(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing degrees for seed")
		return err
	}
	if len(degrees) > 0 {
		return nil
	}

	type programSeed struct {
		name     string
		duration int
	}
	seeds := []struct {
		degree   string
		level    string
		programs []programSeed
	}{
		{"Bachelor of Technology", models.DegreeLevelUG, []programSeed{
			{"Computer Science and Engineering", 4},
			{"Electronics and Communication Engineering", 4},
			{"Mechanical Engineering", 4},
		}},
		{"Master of Technology", models.DegreeLevelPG, []programSeed{
			{"Computer Science and Engineering", 2},
		}},
		{"Master of Computer Applications", models.DegreeLevelPG, []programSeed{
			{"Computer Applications", 2},
		}},
	}

	var finalErr error
	for _, d := range seeds {
		var degreeID int64
		err := dbPool.QueryRow(ctx,
			`INSERT INTO degrees (name, level) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET level = EXCLUDED.level
			 RETURNING id`,
			d.degree, d.level).Scan(&degreeID)
		if err != nil {
			lgr.Error().Err(err).Str("degree", d.degree).Msg("Error seeding degree")
			finalErr = errors.Join(finalErr, fmt.Errorf("seed degree %s: %w", d.degree, err))
			continue
		}
		for _, p := range d.programs {
			_, err := dbPool.Exec(ctx,
				`INSERT INTO programs (name, degree_id, duration_years) VALUES ($1, $2, $3)
				 ON CONFLICT (degree_id, name) DO NOTHING`,
				p.name, degreeID, p.duration)
			if err != nil {
				lgr.Error().Err(err).Str("program", p.name).Msg("Error seeding program")
				finalErr = errors.Join(finalErr, fmt.Errorf("seed program %s: %w", p.name, err))
			}
		}
	}

	return finalErr
}
