package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leavedesk/internal/auth"
	"leavedesk/internal/platform/config"
)

// Seed bootstraps the master administrator account so a fresh deployment
// has someone who can create employees and approve requests.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", cfg.SeedAdminEmail).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (name, username, email, section, is_admin, is_master, password_hash)
    VALUES ($1, $2, $3, $4, true, true, $5)
  `, cfg.SeedAdminName, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminSection, hash)
	return err
}
