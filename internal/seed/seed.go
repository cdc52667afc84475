package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/config"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// Run seeds the fixed taxonomy (roles, batches, semesters, streams) and
// the bootstrap admin account. Every statement is idempotent, so the
// seeder runs on every startup.
func Run(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	if err := seedTaxonomy(ctx, pool); err != nil {
		return err
	}
	return seedAdmin(ctx, pool, cfg)
}

func seedTaxonomy(ctx context.Context, pool *pgxpool.Pool) error {
	roles := map[models.Role]string{
		models.RoleAdmin:           "Admin",
		models.RoleStudent:         "Student",
		models.RoleStaff:           "Staff",
		models.RoleDepartmentAdmin: "Department",
		models.RoleRepresentative:  "Representative",
	}
	for id, name := range roles {
		if _, err := pool.Exec(ctx, `
			INSERT INTO roles (role_id, role_name) VALUES ($1, $2)
			ON CONFLICT (role_id) DO NOTHING`, id, name); err != nil {
			return fmt.Errorf("error seeding roles: %w", err)
		}
	}

	for _, year := range []string{"2nd Year", "3rd Year", "4th Year", "5th Year"} {
		if _, err := pool.Exec(ctx, `
			INSERT INTO batches (batch_year) VALUES ($1)
			ON CONFLICT (batch_year) DO NOTHING`, year); err != nil {
			return fmt.Errorf("error seeding batches: %w", err)
		}
	}

	for _, name := range []string{"1st Semester", "2nd Semester"} {
		if _, err := pool.Exec(ctx, `
			INSERT INTO semesters (semester_name) VALUES ($1)
			ON CONFLICT (semester_name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("error seeding semesters: %w", err)
		}
	}

	for _, name := range []string{"Computer", "Communication", "Control", "Power"} {
		if _, err := pool.Exec(ctx, `
			INSERT INTO streams (stream_name) VALUES ($1)
			ON CONFLICT (stream_name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("error seeding streams: %w", err)
		}
	}
	return nil
}

// seedAdmin creates the bootstrap admin when configured and absent.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Warn().Msg("No bootstrap admin configured, skipping admin seed")
		return nil
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, cfg.Seed.AdminEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (role_id, id_number, name, email, password)
		VALUES ($1, $2, $3, $4, $5)`,
		models.RoleAdmin, "ADMIN-001", "Administrator", cfg.Seed.AdminEmail, hash)
	if err != nil {
		return fmt.Errorf("error seeding admin account: %w", err)
	}

	logger.Info().Str("email", cfg.Seed.AdminEmail).Msg("Bootstrap admin created")
	return nil
}
